// Package user defines the account entity and its request payloads.
package user

import "github.com/deppfellow/vocab/internal/model"

// User is an account. Password holds the bcrypt string and is never
// serialized.
type User struct {
	model.BaseWithUpdatedAt
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
	Points   int    `json:"points" db:"points"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	ID int64 `json:"id"`
}
