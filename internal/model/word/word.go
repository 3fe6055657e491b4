// Package word defines catalog entries and their request payloads.
package word

import "github.com/deppfellow/vocab/internal/model"

// DefaultDifficulty applies when a new word does not name one.
const DefaultDifficulty = "medium"

// Word is an append-only catalog entry.
type Word struct {
	model.Base
	Word               string           `json:"word" db:"word"`
	Definition         string           `json:"definition" db:"definition"`
	PhoneticSpelling   *string          `json:"phonetic_spelling" db:"phonetic_spelling"`
	AudioURL           *string          `json:"audio_url" db:"audio_url"`
	ImageURL           *string          `json:"image_url" db:"image_url"`
	PartOfSpeech       *string          `json:"part_of_speech" db:"part_of_speech"`
	Synonyms           model.StringList `json:"synonyms" db:"synonyms"`
	CommonCollocations model.StringList `json:"common_collocations" db:"common_collocations"`
	UsageContext       *string          `json:"usage_context" db:"usage_context"`
	Example            *string          `json:"example" db:"example"`
	Category           *string          `json:"category" db:"category"`
	Tags               model.StringList `json:"tags" db:"tags"`
	Difficulty         string           `json:"difficulty" db:"difficulty"`
}
