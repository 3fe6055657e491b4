// Package quiz defines quiz templates and the attempts users record
// against them. Both are immutable once stored.
package quiz

import (
	"time"

	"github.com/deppfellow/vocab/internal/model"
)

// Quiz is a reusable template naming the words a quiz covers.
type Quiz struct {
	model.Base
	WordList model.IDList     `json:"word_list" db:"word_list"`
	Tags     model.StringList `json:"tags" db:"tags"`
}

// UserQuiz is one attempt. Scores are stored exactly as submitted.
type UserQuiz struct {
	model.Base
	UserID         int64        `json:"user_id" db:"user_id"`
	QuizID         int64        `json:"quiz_id" db:"quiz_id"`
	CorrectWords   model.IDList `json:"correct_words" db:"correct_words"`
	IncorrectWords model.IDList `json:"incorrect_words" db:"incorrect_words"`
	ScoreRaw       int          `json:"score_raw" db:"score_raw"`
	ScorePercent   float64      `json:"score_percent" db:"score_percent"`
	QuizDate       time.Time    `json:"quiz_date" db:"quiz_date"`
}
