// Package session holds the client's authentication state.
//
// A Store is the single owner of the session token and user profile. It
// hydrates the token from durable storage when built, and only its own
// Register, Login and Logout operations change it. Those operations never
// return errors: they report through Status, and the boolean result tells
// the caller whether the call succeeded.
//
// Authentication status is derived on every read: a session is
// authenticated exactly when its token is non-empty.
//
// Success notices expire. A Notice carries its creation time and TTL and
// callers ask whether it is still active at a given instant, so no timer
// ever mutates the store behind the caller's back.
package session
