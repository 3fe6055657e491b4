// Package progress defines per-user learning state for catalog words.
package progress

import (
	"strings"
	"time"

	"github.com/deppfellow/vocab/internal/model"
)

// Status is where a word sits in a user's review cycle. Transitions are
// decided by the client.
type Status string

const (
	StatusNotStarted Status = "not started"
	StatusActive     Status = "active"
	StatusWaiting    Status = "waiting"
	StatusLearned    Status = "learned"
)

// Statuses lists every accepted value in display order.
var Statuses = []Status{StatusNotStarted, StatusActive, StatusWaiting, StatusLearned}

// ParseStatus accepts the stored values plus the "not-started" and
// "not_started" spellings, case-insensitively.
func ParseStatus(s string) (Status, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "not-started", "not_started":
		return StatusNotStarted, true
	}

	for _, status := range Statuses {
		if string(status) == normalized {
			return status, true
		}
	}
	return "", false
}

// Progress is one user's state for one word; (user_id, word_id) is unique.
type Progress struct {
	model.BaseWithUpdatedAt
	UserID         int64      `json:"user_id" db:"user_id"`
	WordID         int64      `json:"word_id" db:"word_id"`
	Status         Status     `json:"status" db:"status"`
	ReviewCount    int        `json:"review_count" db:"review_count"`
	ReviewSpacing  int        `json:"review_spacing" db:"review_spacing"`
	ReviewLastDate *time.Time `json:"review_last_date" db:"review_last_date"`
}
