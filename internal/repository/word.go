package repository

import (
	"context"

	"github.com/deppfellow/vocab/internal/model/word"
	"github.com/deppfellow/vocab/internal/sqlerr"
	"github.com/jmoiron/sqlx"
)

const wordColumns = `id, word, definition, phonetic_spelling, audio_url, image_url, part_of_speech,
	synonyms, common_collocations, usage_context, example, category, tags, difficulty, created_at`

type WordRepository struct {
	q sqlx.ExtContext
}

func NewWordRepository(q sqlx.ExtContext) *WordRepository {
	return &WordRepository{q: q}
}

func (r *WordRepository) Create(ctx context.Context, w *word.Word) (*word.Word, error) {
	id, err := insertReturningID(ctx, r.q,
		`INSERT INTO words (word, definition, phonetic_spelling, audio_url, image_url, part_of_speech,
			synonyms, common_collocations, usage_context, example, category, tags, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		w.Word, w.Definition, w.PhoneticSpelling, w.AudioURL, w.ImageURL, w.PartOfSpeech,
		w.Synonyms, w.CommonCollocations, w.UsageContext, w.Example, w.Category, w.Tags, w.Difficulty,
	)
	if err != nil {
		return nil, sqlerr.WithTable("words", err)
	}
	return r.GetByID(ctx, id)
}

func (r *WordRepository) GetByID(ctx context.Context, id int64) (*word.Word, error) {
	var w word.Word
	if err := get(ctx, r.q, &w, `SELECT `+wordColumns+` FROM words WHERE id = ?`, id); err != nil {
		return nil, sqlerr.WithTable("words", err)
	}
	return &w, nil
}

func (r *WordRepository) List(ctx context.Context) ([]word.Word, error) {
	words := []word.Word{}
	if err := selectAll(ctx, r.q, &words, `SELECT `+wordColumns+` FROM words ORDER BY id`); err != nil {
		return nil, sqlerr.WithTable("words", err)
	}
	return words, nil
}

// ExistsByText reports whether a word with exactly this text is stored.
func (r *WordRepository) ExistsByText(ctx context.Context, text string) (bool, error) {
	found, err := exists(ctx, r.q, `SELECT 1 FROM words WHERE word = ? LIMIT 1`, text)
	return found, sqlerr.WithTable("words", err)
}

func (r *WordRepository) Exists(ctx context.Context, id int64) (bool, error) {
	found, err := exists(ctx, r.q, `SELECT 1 FROM words WHERE id = ?`, id)
	return found, sqlerr.WithTable("words", err)
}

// MissingIDs returns the ids in ids that have no word, in input order.
func (r *WordRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id FROM words WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	var found []int64
	if err := selectAll(ctx, r.q, &found, query, args...); err != nil {
		return nil, sqlerr.WithTable("words", err)
	}

	known := make(map[int64]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
