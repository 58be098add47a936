// Package client talks to the account service over gRPC on behalf of the CLI.
//
// GRPCClient keeps the session token returned by Verify or SignIn in memory
// and attaches it as access_token metadata on every call. Server failures
// arrive as gRPC statuses whose message is the stable user-facing text of
// a common sentinel; mapError turns them back into that sentinel, so
// callers match with errors.Is. An unreachable server is ErrUnavailable.
package client
