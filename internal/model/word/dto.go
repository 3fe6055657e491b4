package word

import (
	"strings"

	"github.com/deppfellow/vocab/internal/model"
	"github.com/deppfellow/vocab/internal/validation"
)

type CreatePayload struct {
	Word               string           `json:"word" validate:"required,max=255"`
	Definition         string           `json:"definition" validate:"required"`
	PhoneticSpelling   *string          `json:"phonetic_spelling" validate:"omitempty,max=255"`
	AudioURL           *string          `json:"audio_url" validate:"omitempty,max=2048"`
	ImageURL           *string          `json:"image_url" validate:"omitempty,max=2048"`
	PartOfSpeech       *string          `json:"part_of_speech" validate:"omitempty,max=64"`
	Synonyms           model.StringList `json:"synonyms"`
	CommonCollocations model.StringList `json:"common_collocations"`
	UsageContext       *string          `json:"usage_context"`
	Example            *string          `json:"example"`
	Category           *string          `json:"category" validate:"omitempty,max=255"`
	Tags               model.StringList `json:"tags"`
	Difficulty         *string          `json:"difficulty" validate:"omitempty,max=64"`
}

func (p *CreatePayload) Validate() error {
	p.Word = strings.TrimSpace(p.Word)
	return validation.ValidateStruct(p)
}

// ToWord builds the entity to insert, applying the default difficulty.
func (p *CreatePayload) ToWord() *Word {
	difficulty := DefaultDifficulty
	if p.Difficulty != nil && *p.Difficulty != "" {
		difficulty = *p.Difficulty
	}

	return &Word{
		Word:               p.Word,
		Definition:         p.Definition,
		PhoneticSpelling:   p.PhoneticSpelling,
		AudioURL:           p.AudioURL,
		ImageURL:           p.ImageURL,
		PartOfSpeech:       p.PartOfSpeech,
		Synonyms:           p.Synonyms,
		CommonCollocations: p.CommonCollocations,
		UsageContext:       p.UsageContext,
		Example:            p.Example,
		Category:           p.Category,
		Tags:               p.Tags,
		Difficulty:         difficulty,
	}
}

type GetByIDPayload struct {
	ID int64 `param:"id" json:"-" validate:"gt=0"`
}

func (p *GetByIDPayload) Validate() error {
	return validation.ValidateStruct(p)
}

type ListPayload struct{}

func (p *ListPayload) Validate() error {
	return nil
}
