package user

import (
	"fmt"

	"github.com/deppfellow/vocab/internal/lib/password"
	"github.com/deppfellow/vocab/internal/validation"
)

type RegisterPayload struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`

	// Points is accepted for compatibility and ignored; accounts start at 0.
	Points *int `json:"points" validate:"omitempty,gte=0"`
}

func (p *RegisterPayload) Validate() error {
	if err := validation.ValidateStruct(p); err != nil {
		return err
	}
	return checkPasswordBytes(&p.Password)
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

func (p *LoginPayload) Validate() error {
	return validation.ValidateStruct(p)
}

// UpdatePayload changes only the fields that are present.
type UpdatePayload struct {
	ID       int64   `param:"id" json:"-" validate:"gt=0"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
	Points   *int    `json:"points" validate:"omitempty,gte=0"`
}

func (p *UpdatePayload) Validate() error {
	if err := validation.ValidateStruct(p); err != nil {
		return err
	}
	return checkPasswordBytes(p.Password)
}

type GetByIDPayload struct {
	ID int64 `param:"id" json:"-" validate:"gt=0"`
}

func (p *GetByIDPayload) Validate() error {
	return validation.ValidateStruct(p)
}

type GetByEmailPayload struct {
	Email string `param:"email" json:"-" validate:"required"`
}

func (p *GetByEmailPayload) Validate() error {
	return validation.ValidateStruct(p)
}

type ListPayload struct{}

func (p *ListPayload) Validate() error {
	return nil
}

// checkPasswordBytes enforces the bcrypt limit in bytes; the max tag
// counts runes.
func checkPasswordBytes(plain *string) error {
	if plain != nil && len(*plain) > password.MaxBytes {
		return validation.CustomValidationErrors{{
			Field:   "password",
			Message: fmt.Sprintf("must not exceed %d bytes", password.MaxBytes),
		}}
	}
	return nil
}
