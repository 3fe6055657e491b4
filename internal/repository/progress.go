package repository

import (
	"context"

	"github.com/deppfellow/vocab/internal/model/progress"
	"github.com/deppfellow/vocab/internal/sqlerr"
	"github.com/jmoiron/sqlx"
)

const progressColumns = `id, user_id, word_id, status, review_count, review_spacing, review_last_date, created_at, updated_at`

type ProgressRepository struct {
	q sqlx.ExtContext
}

func NewProgressRepository(q sqlx.ExtContext) *ProgressRepository {
	return &ProgressRepository{q: q}
}

// Upsert inserts the record for (UserID, WordID) or, when one already
// exists, overwrites its mutable fields in place. The unique key keeps
// concurrent upserts from creating a second row.
func (r *ProgressRepository) Upsert(ctx context.Context, p *progress.Progress) (*progress.Progress, error) {
	id, err := insertReturningID(ctx, r.q,
		`INSERT INTO user_word_progress (user_id, word_id, status, review_count, review_spacing, review_last_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			status = excluded.status,
			review_count = excluded.review_count,
			review_spacing = excluded.review_spacing,
			review_last_date = excluded.review_last_date,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		p.UserID, p.WordID, p.Status, p.ReviewCount, p.ReviewSpacing, p.ReviewLastDate,
	)
	if err != nil {
		return nil, sqlerr.WithTable("user_word_progress", err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites the mutable fields of the record with p.ID.
func (r *ProgressRepository) Update(ctx context.Context, p *progress.Progress) (*progress.Progress, error) {
	_, err := exec(ctx, r.q,
		`UPDATE user_word_progress SET status = ?, review_count = ?, review_spacing = ?, review_last_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Status, p.ReviewCount, p.ReviewSpacing, p.ReviewLastDate, p.ID,
	)
	if err != nil {
		return nil, sqlerr.WithTable("user_word_progress", err)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProgressRepository) GetByID(ctx context.Context, id int64) (*progress.Progress, error) {
	var p progress.Progress
	if err := get(ctx, r.q, &p, `SELECT `+progressColumns+` FROM user_word_progress WHERE id = ?`, id); err != nil {
		return nil, sqlerr.WithTable("user_word_progress", err)
	}
	return &p, nil
}

// GetOwned returns record id only if it belongs to (userID, wordID).
func (r *ProgressRepository) GetOwned(ctx context.Context, id, userID, wordID int64) (*progress.Progress, error) {
	var p progress.Progress
	err := get(ctx, r.q, &p,
		`SELECT `+progressColumns+` FROM user_word_progress WHERE id = ? AND user_id = ? AND word_id = ?`,
		id, userID, wordID,
	)
	if err != nil {
		return nil, sqlerr.WithTable("user_word_progress", err)
	}
	return &p, nil
}

func (r *ProgressRepository) GetByPair(ctx context.Context, userID, wordID int64) (*progress.Progress, error) {
	var p progress.Progress
	err := get(ctx, r.q, &p,
		`SELECT `+progressColumns+` FROM user_word_progress WHERE user_id = ? AND word_id = ?`,
		userID, wordID,
	)
	if err != nil {
		return nil, sqlerr.WithTable("user_word_progress", err)
	}
	return &p, nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID int64) ([]progress.Progress, error) {
	records := []progress.Progress{}
	err := selectAll(ctx, r.q, &records,
		`SELECT `+progressColumns+` FROM user_word_progress WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, sqlerr.WithTable("user_word_progress", err)
	}
	return records, nil
}
