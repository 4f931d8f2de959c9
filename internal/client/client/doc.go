// Package client contains the gRPC client for the gophauth backend.
//
// GRPCClient keeps the session's access and refresh tokens, attaches the
// access token to every call, and when the server rejects it as invalid or
// expired, refreshes once and retries the call.
//
// Server failures come back as *ServerError carrying the stable failure
// code; transport trouble is reported as ErrUnavailable.
package client
