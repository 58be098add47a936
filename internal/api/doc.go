// Package api is the wire contract shared by the account service surfaces and
// the CLI client: request and response bodies, user-facing success messages,
// the gRPC service descriptor and the JSON codec it is carried with.
package api
