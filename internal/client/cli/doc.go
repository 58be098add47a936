// Package cli provides the interactive account command-line client.
//
// It wires configuration, the gRPC client and a REPL. Commands prompt for
// their fields one by one; passwords are read from the terminal without
// echo. The session token from signin or verify lives only in memory and is
// used by "me".
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
