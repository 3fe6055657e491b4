package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/vocab/internal/server"
	"github.com/jmoiron/sqlx"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	db *sqlx.DB

	User     *UserRepository
	Word     *WordRepository
	Progress *ProgressRepository
	Quiz     *QuizRepository
}

// NewRepositories builds the container on the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.DB)
}

// New builds the container on db.
func New(db *sqlx.DB) *Repositories {
	repos := bind(db)
	repos.db = db
	return repos
}

func bind(q sqlx.ExtContext) *Repositories {
	return &Repositories{
		User:     NewUserRepository(q),
		Word:     NewWordRepository(q),
		Progress: NewProgressRepository(q),
		Quiz:     NewQuizRepository(q),
	}
}

// WithinTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) WithinTx(ctx context.Context, fn func(tx *Repositories) error) (err error) {
	if r.db == nil {
		return errors.New("nested transactions are not supported")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(bind(tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
