// Package validation binds requests and checks them against the
// `validate` struct tags (go-playground/validator) plus any rule a payload
// adds in its Validate method. Failures become a 400 errs.HTTPError with
// one entry per offending field.
package validation
