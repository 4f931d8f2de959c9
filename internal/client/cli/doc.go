// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration and the gRPC client into a REPL: register, log in,
// inspect the session, and run the account administration commands the
// server allows for the logged-in role.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
