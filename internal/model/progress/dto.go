package progress

import (
	"strings"
	"time"

	"github.com/deppfellow/vocab/internal/validation"
)

// UpsertPayload carries the path ids plus the caller-computed fields.
// Body ids are optional and must agree with the path when present.
type UpsertPayload struct {
	UserID int64 `param:"uid" json:"-" validate:"gt=0"`
	WordID int64 `param:"wid" json:"-" validate:"gt=0"`

	ID         *int64 `json:"id" validate:"omitempty,gt=0"`
	BodyUserID *int64 `json:"user_id"`
	BodyWordID *int64 `json:"word_id"`

	Status         string     `json:"status" validate:"required"`
	ReviewCount    int        `json:"review_count" validate:"gte=0"`
	ReviewSpacing  int        `json:"review_spacing" validate:"gte=0"`
	ReviewLastDate *time.Time `json:"review_last_date"`

	status Status
}

func (p *UpsertPayload) Validate() error {
	if err := validation.ValidateStruct(p); err != nil {
		return err
	}

	status, ok := ParseStatus(p.Status)
	if !ok {
		values := make([]string, len(Statuses))
		for i, s := range Statuses {
			values[i] = string(s)
		}
		return validation.CustomValidationErrors{{
			Field:   "status",
			Message: "must be one of: " + strings.Join(values, ", "),
		}}
	}
	p.status = status
	return nil
}

// ParsedStatus is the normalized status. It is only set after Validate.
func (p *UpsertPayload) ParsedStatus() Status {
	if p.status == "" {
		return StatusNotStarted
	}
	return p.status
}

type ListPayload struct {
	UserID int64 `param:"uid" json:"-" validate:"gt=0"`
}

func (p *ListPayload) Validate() error {
	return validation.ValidateStruct(p)
}

type GetPayload struct {
	UserID int64 `param:"uid" json:"-" validate:"gt=0"`
	WordID int64 `param:"wid" json:"-" validate:"gt=0"`
}

func (p *GetPayload) Validate() error {
	return validation.ValidateStruct(p)
}
