// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated payloads from the handlers, checks the preconditions an
// operation depends on (uniqueness, existence, path and body agreement)
// and calls repository methods to read and write the store.
package service
