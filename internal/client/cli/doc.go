// Package cli provides the interactive bookshelf command-line client.
//
// It wires configuration, local storage, the library API client, the
// session store and the router, then runs a REPL. Each navigable location
// of the client (/login, /register, /books, /return-books,
// /borrow-books/:id) has a view that prints it; commands move between
// locations through the router, so the authentication guard applies to
// every one of them.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
