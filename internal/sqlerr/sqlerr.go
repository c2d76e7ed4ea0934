// Package sqlerr handles database driver errors.
//
// It parses error codes from the PostgreSQL driver and
// converts them into client-facing HTTP errors (e.g. a
// "unique violation" becomes a "Bad Request" with a
// readable message).
package sqlerr
