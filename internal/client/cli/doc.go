// Package cli provides the interactive Brew Haven command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// Commands: signup, login, me, ping, logout, help, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
