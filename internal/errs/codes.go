package errs

// Stable error codes returned by the account, catalog, progress and quiz
// operations. Clients switch on these, so they never change.
const (
	CodeUserAlreadyExists  = "USER_ALREADY_EXISTS"
	CodeWordAlreadyExists  = "WORD_ALREADY_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeWordNotFound       = "WORD_NOT_FOUND"
	CodeUserQuizNotFound   = "USER_QUIZ_NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserIDMismatch     = "USER_ID_MISMATCH"
	CodeWordIDMismatch     = "WORD_ID_MISMATCH"
)

// NewDuplicateError reports that a unique value is already taken.
func NewDuplicateError(code, field, message string) *HTTPError {
	return NewBadRequestError(message, true, &code, []FieldError{{Field: field, Error: "already exists"}}, nil)
}

// NewMissingError reports that a referenced record does not exist.
func NewMissingError(code, message string) *HTTPError {
	return NewNotFoundError(message, true, &code)
}

// NewMismatchError reports a body identifier that disagrees with the path.
func NewMismatchError(code, field string) *HTTPError {
	return NewBadRequestError(
		field+" in the request body does not match the path",
		true,
		&code,
		[]FieldError{{Field: field, Error: "must match the path parameter"}},
		nil,
	)
}

// NewInvalidCredentialsError is returned when a password does not verify.
func NewInvalidCredentialsError() *HTTPError {
	return NewUnauthorizedError("Invalid email or password", true).WithCode(CodeInvalidCredentials)
}

// Code returns the HTTPError code carried by err, or "" for other errors.
func Code(err error) string {
	if httpErr, ok := As(err); ok {
		return httpErr.Code
	}
	return ""
}
