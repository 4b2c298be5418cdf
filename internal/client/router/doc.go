// Package router maps client locations onto views and gates every
// navigation with an authentication guard.
//
// Paths use the familiar ":param" notation ("/borrow-books/:id"). They are
// matched with gorilla/mux, so a path resolves exactly like an HTTP request
// path would on a mux-based server.
package router
