package service

import (
	"context"
	"time"

	"github.com/deppfellow/vocab/internal/errs"
	"github.com/deppfellow/vocab/internal/model/progress"
	"github.com/deppfellow/vocab/internal/repository"
	"github.com/deppfellow/vocab/internal/server"
)

// ProgressService tracks each user's review state per word. All values
// are supplied by the caller; nothing is scheduled here.
type ProgressService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewProgressService(s *server.Server, repos *repository.Repositories) *ProgressService {
	return &ProgressService{server: s, repos: repos}
}

// Upsert writes the record for the path's (user, word) pair.
//
// When payload.ID names a record owned by that pair it is overwritten.
// Otherwise the user and word must exist and the record is inserted, or
// updated in place if the pair already has one.
func (s *ProgressService) Upsert(ctx context.Context, payload *progress.UpsertPayload) (*progress.Progress, error) {
	if payload.BodyUserID != nil && *payload.BodyUserID != payload.UserID {
		return nil, errs.NewMismatchError(errs.CodeUserIDMismatch, "user_id")
	}
	if payload.BodyWordID != nil && *payload.BodyWordID != payload.WordID {
		return nil, errs.NewMismatchError(errs.CodeWordIDMismatch, "word_id")
	}

	reviewed := payload.ReviewLastDate
	if reviewed == nil {
		now := time.Now().UTC()
		reviewed = &now
	}

	record := &progress.Progress{
		UserID:         payload.UserID,
		WordID:         payload.WordID,
		Status:         payload.ParsedStatus(),
		ReviewCount:    payload.ReviewCount,
		ReviewSpacing:  payload.ReviewSpacing,
		ReviewLastDate: reviewed,
	}

	var result *progress.Progress
	err := s.repos.WithinTx(ctx, func(tx *repository.Repositories) error {
		if payload.ID != nil {
			existing, err := tx.Progress.GetOwned(ctx, *payload.ID, payload.UserID, payload.WordID)
			if err == nil {
				record.ID = existing.ID
				result, err = tx.Progress.Update(ctx, record)
				return err
			}
			if !repository.IsNotFound(err) {
				return err
			}
		}

		found, err := tx.User.Exists(ctx, payload.UserID)
		if err != nil {
			return err
		}
		if !found {
			return errs.NewMissingError(errs.CodeUserNotFound, "User not found")
		}

		found, err = tx.Word.Exists(ctx, payload.WordID)
		if err != nil {
			return err
		}
		if !found {
			return errs.NewMissingError(errs.CodeWordNotFound, "Word not found")
		}

		result, err = tx.Progress.Upsert(ctx, record)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListByUser returns an empty list when the user has no records.
func (s *ProgressService) ListByUser(ctx context.Context, userID int64) ([]progress.Progress, error) {
	return s.repos.Progress.ListByUser(ctx, userID)
}

// Get returns nil without an error when the pair has no record.
func (s *ProgressService) Get(ctx context.Context, userID, wordID int64) (*progress.Progress, error) {
	return orNil(s.repos.Progress.GetByPair(ctx, userID, wordID))
}
