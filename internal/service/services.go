package service

import (
	"github.com/deppfellow/vocab/internal/repository"
	"github.com/deppfellow/vocab/internal/server"
)

type Services struct {
	User     *UserService
	Word     *WordService
	Progress *ProgressService
	Quiz     *QuizService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		User:     NewUserService(s, repos),
		Word:     NewWordService(s, repos),
		Progress: NewProgressService(s, repos),
		Quiz:     NewQuizService(s, repos),
	}, nil
}
