package service

import (
	"context"

	"github.com/deppfellow/vocab/internal/errs"
	"github.com/deppfellow/vocab/internal/lib/password"
	"github.com/deppfellow/vocab/internal/model/user"
	"github.com/deppfellow/vocab/internal/repository"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/rs/zerolog"
)

// UserService manages accounts: registration, login and profile updates.
type UserService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewUserService(s *server.Server, repos *repository.Repositories) *UserService {
	return &UserService{server: s, repos: repos}
}

// Register creates an account with zero points. A supplied points value
// is ignored.
func (s *UserService) Register(ctx context.Context, payload *user.RegisterPayload) (*user.User, error) {
	taken, err := s.emailTaken(ctx, s.repos, payload.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, duplicateEmail()
	}

	hashed, err := password.Hash(payload.Password, s.server.Config.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	return s.repos.User.Create(ctx, &user.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hashed,
	})
}

// Authenticate checks an email and password pair and returns the user id.
func (s *UserService) Authenticate(ctx context.Context, payload *user.LoginPayload) (*user.LoginResponse, error) {
	u, err := s.repos.User.GetByEmail(ctx, payload.Email)
	if repository.IsNotFound(err) {
		return nil, errs.NewMissingError(errs.CodeUserNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}

	ok, err := password.Verify(u.Password, payload.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		zerolog.Ctx(ctx).Warn().Int64("target_user_id", u.ID).Msg("login rejected: wrong password")
		return nil, errs.NewInvalidCredentialsError()
	}

	return &user.LoginResponse{ID: u.ID}, nil
}

// Update applies the fields present in payload. The lookup, the email
// check and the write share one transaction.
func (s *UserService) Update(ctx context.Context, payload *user.UpdatePayload) (*user.User, error) {
	var updated *user.User

	err := s.repos.WithinTx(ctx, func(tx *repository.Repositories) error {
		u, err := tx.User.GetByID(ctx, payload.ID)
		if repository.IsNotFound(err) {
			return errs.NewMissingError(errs.CodeUserNotFound, "User not found")
		}
		if err != nil {
			return err
		}

		if payload.Email != nil && *payload.Email != u.Email {
			taken, err := s.emailTaken(ctx, tx, *payload.Email, u.ID)
			if err != nil {
				return err
			}
			if taken {
				return duplicateEmail()
			}
			u.Email = *payload.Email
		}

		if payload.Name != nil {
			u.Name = *payload.Name
		}
		if payload.Points != nil {
			u.Points = *payload.Points
		}
		if payload.Password != nil {
			hashed, err := password.Hash(*payload.Password, s.server.Config.Auth.BcryptCost)
			if err != nil {
				return err
			}
			u.Password = hashed
		}

		updated, err = tx.User.Update(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	return s.repos.User.List(ctx)
}

// GetByID returns nil without an error when the user does not exist.
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return orNil(s.repos.User.GetByID(ctx, id))
}

// GetByEmail returns nil without an error when no user has the email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return orNil(s.repos.User.GetByEmail(ctx, email))
}

// emailTaken reports whether a user other than exceptID owns email.
func (s *UserService) emailTaken(ctx context.Context, repos *repository.Repositories, email string, exceptID int64) (bool, error) {
	owner, err := repos.User.GetByEmail(ctx, email)
	if repository.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner.ID != exceptID, nil
}

func duplicateEmail() error {
	return errs.NewDuplicateError(errs.CodeUserAlreadyExists, "email", "A user with this email already exists")
}

// orNil turns a missing row into a nil result.
func orNil[T any](v *T, err error) (*T, error) {
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
