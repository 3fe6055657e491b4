package quiz

import (
	"time"

	"github.com/deppfellow/vocab/internal/model"
	"github.com/deppfellow/vocab/internal/validation"
)

type CreateQuizPayload struct {
	WordList model.IDList     `json:"word_list" validate:"required,dive,gt=0"`
	Tags     model.StringList `json:"tags"`
}

func (p *CreateQuizPayload) Validate() error {
	return validation.ValidateStruct(p)
}

type GetQuizPayload struct {
	ID int64 `param:"id" json:"-" validate:"gt=0"`
}

func (p *GetQuizPayload) Validate() error {
	return validation.ValidateStruct(p)
}

type ListQuizzesPayload struct{}

func (p *ListQuizzesPayload) Validate() error {
	return nil
}

// CreateAttemptPayload records a finished quiz. The body user_id must
// match the path.
type CreateAttemptPayload struct {
	PathUserID int64 `param:"uid" json:"-" validate:"gt=0"`

	UserID         int64        `json:"user_id" validate:"gt=0"`
	QuizID         int64        `json:"quiz_id" validate:"gt=0"`
	CorrectWords   model.IDList `json:"correct_words"`
	IncorrectWords model.IDList `json:"incorrect_words"`
	ScoreRaw       int          `json:"score_raw"`
	ScorePercent   float64      `json:"score_percent"`
	QuizDate       *time.Time   `json:"quiz_date"`
}

func (p *CreateAttemptPayload) Validate() error {
	return validation.ValidateStruct(p)
}

type ListAttemptsPayload struct {
	UserID int64 `param:"uid" json:"-" validate:"gt=0"`
}

func (p *ListAttemptsPayload) Validate() error {
	return validation.ValidateStruct(p)
}

type GetAttemptPayload struct {
	UserID int64 `param:"uid" json:"-" validate:"gt=0"`
	ID     int64 `param:"id" json:"-" validate:"gt=0"`
}

func (p *GetAttemptPayload) Validate() error {
	return validation.ValidateStruct(p)
}
