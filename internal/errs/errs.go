// Package errs defines the error body every endpoint answers with.
//
// HTTPError carries the status, a machine-readable code, an optional list
// of per-field errors and an optional client action. Domain codes such as
// USER_ALREADY_EXISTS live in codes.go.
package errs
