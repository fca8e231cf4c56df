// Package cli provides the interactive folio command-line client.
//
// It wires configuration, local token storage, the API client, the session
// manager and the route guard into a small REPL. Public commands (help,
// register, login, contact, exit) always run. Owner-only commands go through
// the guard first: while the session is resolving they wait for it, and
// without a session they run the login prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
