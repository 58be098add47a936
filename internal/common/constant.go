// Package common contains shared constants and sentinel errors used across
// the server and the CLI client.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// session token on outbound requests.
const AccessTokenHeaderName = "access_token"

// BearerScheme is the HTTP Authorization scheme expected on protected routes.
const BearerScheme = "Bearer"
