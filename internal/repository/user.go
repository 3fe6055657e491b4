package repository

import (
	"context"

	"github.com/deppfellow/vocab/internal/model/user"
	"github.com/deppfellow/vocab/internal/sqlerr"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, email, password, points, created_at, updated_at`

type UserRepository struct {
	q sqlx.ExtContext
}

func NewUserRepository(q sqlx.ExtContext) *UserRepository {
	return &UserRepository{q: q}
}

// Create inserts u and returns the stored row.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	id, err := insertReturningID(ctx, r.q,
		`INSERT INTO users (name, email, password, points) VALUES (?, ?, ?, ?) RETURNING id`,
		u.Name, u.Email, u.Password, u.Points,
	)
	if err != nil {
		return nil, sqlerr.WithTable("users", err)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	if err := get(ctx, r.q, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, sqlerr.WithTable("users", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := get(ctx, r.q, &u, `SELECT `+userColumns+` FROM users WHERE email = ?`, email); err != nil {
		return nil, sqlerr.WithTable("users", err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	users := []user.User{}
	if err := selectAll(ctx, r.q, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, sqlerr.WithTable("users", err)
	}
	return users, nil
}

// Update overwrites the mutable columns of u and returns the stored row.
func (r *UserRepository) Update(ctx context.Context, u *user.User) (*user.User, error) {
	_, err := exec(ctx, r.q,
		`UPDATE users SET name = ?, email = ?, password = ?, points = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		u.Name, u.Email, u.Password, u.Points, u.ID,
	)
	if err != nil {
		return nil, sqlerr.WithTable("users", err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	found, err := exists(ctx, r.q, `SELECT 1 FROM users WHERE id = ?`, id)
	return found, sqlerr.WithTable("users", err)
}
