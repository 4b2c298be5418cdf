// Package api is the HTTP JSON client for the library REST API.
//
// # Endpoints
//
//	POST /register              registration form, arbitrary fields
//	POST /login                 credentials -> {access_token, user, token}
//	GET  /books                 catalog
//	GET  /books/{id}            one book
//	POST /books/{id}/borrow     borrow a book for the current user
//	GET  /borrowed-books        the current user's loans
//	POST /books/{id}/return     return a borrowed book
//
// Catalog responses may be wrapped in a {"data": ...} envelope; both forms
// are accepted.
//
// # Errors
//
// Every non-2xx response becomes a typed error:
//
//   - *ValidationError for 422 with {"errors": {"field": ["msg", ...]}};
//     field order follows the response document.
//   - *StatusError for any other status, with the server "message" if any.
//     A 401 also matches ErrUnauthorized.
//
// Network failures and undecodable bodies match ErrTransport.
package api
