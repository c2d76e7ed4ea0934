// Package errs defines the error types returned to API clients.
//
// Every failure a handler or service can produce is expressed as an
// *HTTPError so the global error handler can render one consistent
// JSON shape, with field-level details for validation failures.
package errs
