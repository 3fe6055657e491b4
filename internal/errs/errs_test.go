package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestConstructors_DefaultCodes(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("x", false, nil, nil, nil).Code)
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("x", false, nil).Code)
	assert.Equal(t, "UNAUTHORIZED", NewUnauthorizedError("x", false).Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", NewTooManyRequestsError("x").Code)

	internal := NewInternalServerError()
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "Internal Server Error", internal.Message)
}

func TestDomainErrors(t *testing.T) {
	dup := NewDuplicateError(CodeUserAlreadyExists, "email", "email taken")
	assert.Equal(t, http.StatusBadRequest, dup.Status)
	assert.Equal(t, CodeUserAlreadyExists, dup.Code)
	require.Len(t, dup.Errors, 1)
	assert.Equal(t, "email", dup.Errors[0].Field)

	missing := NewMissingError(CodeWordNotFound, "word not found")
	assert.Equal(t, http.StatusNotFound, missing.Status)
	assert.Equal(t, CodeWordNotFound, missing.Code)

	mismatch := NewMismatchError(CodeUserIDMismatch, "user_id")
	assert.Equal(t, http.StatusBadRequest, mismatch.Status)
	assert.Equal(t, CodeUserIDMismatch, mismatch.Code)

	creds := NewInvalidCredentialsError()
	assert.Equal(t, http.StatusUnauthorized, creds.Status)
	assert.Equal(t, CodeInvalidCredentials, creds.Code)
}

func TestWithMessage_DoesNotMutate(t *testing.T) {
	base := NewNotFoundError("base", false, nil)
	changed := base.WithMessage("changed").WithCode("X")

	assert.Equal(t, "base", base.Message)
	assert.Equal(t, "NOT_FOUND", base.Code)
	assert.Equal(t, "changed", changed.Message)
	assert.Equal(t, "X", changed.Code)
}

func TestAsAndCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", NewMissingError(CodeUserNotFound, "user not found"))

	httpErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, CodeUserNotFound, Code(err))
	assert.True(t, errors.Is(err, &HTTPError{}))

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
	assert.Empty(t, Code(errors.New("plain")))
}
