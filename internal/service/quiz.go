package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/vocab/internal/errs"
	"github.com/deppfellow/vocab/internal/model/quiz"
	"github.com/deppfellow/vocab/internal/repository"
	"github.com/deppfellow/vocab/internal/server"
)

// QuizService manages quiz templates and the attempts recorded against
// them. Scores are stored as submitted.
type QuizService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewQuizService(s *server.Server, repos *repository.Repositories) *QuizService {
	return &QuizService{server: s, repos: repos}
}

// CreateQuiz stores a template. With catalog.validate_quiz_words set,
// every word id must exist.
func (s *QuizService) CreateQuiz(ctx context.Context, payload *quiz.CreateQuizPayload) (*quiz.Quiz, error) {
	if s.server.Config.Catalog.ValidateQuizWords {
		missing, err := s.repos.Word.MissingIDs(ctx, payload.WordList)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, unknownWords(missing)
		}
	}

	return s.repos.Quiz.CreateQuiz(ctx, &quiz.Quiz{
		WordList: payload.WordList,
		Tags:     payload.Tags,
	})
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	return s.repos.Quiz.ListQuizzes(ctx)
}

// GetQuiz returns nil without an error when the template does not exist.
func (s *QuizService) GetQuiz(ctx context.Context, id int64) (*quiz.Quiz, error) {
	return orNil(s.repos.Quiz.GetQuiz(ctx, id))
}

// CreateAttempt records an attempt for the path user. Unknown users or
// quizzes are rejected by the store's foreign keys.
func (s *QuizService) CreateAttempt(ctx context.Context, payload *quiz.CreateAttemptPayload) (*quiz.UserQuiz, error) {
	if payload.UserID != payload.PathUserID {
		return nil, errs.NewMismatchError(errs.CodeUserIDMismatch, "user_id")
	}

	played := time.Now().UTC()
	if payload.QuizDate != nil {
		played = *payload.QuizDate
	}

	return s.repos.Quiz.CreateAttempt(ctx, &quiz.UserQuiz{
		UserID:         payload.UserID,
		QuizID:         payload.QuizID,
		CorrectWords:   payload.CorrectWords,
		IncorrectWords: payload.IncorrectWords,
		ScoreRaw:       payload.ScoreRaw,
		ScorePercent:   payload.ScorePercent,
		QuizDate:       played,
	})
}

// ListAttempts fails with not found when the user has no attempts.
func (s *QuizService) ListAttempts(ctx context.Context, userID int64) ([]quiz.UserQuiz, error) {
	attempts, err := s.repos.Quiz.ListAttempts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, errs.NewMissingError(errs.CodeUserQuizNotFound, "No quiz attempts found for this user")
	}
	return attempts, nil
}

func (s *QuizService) GetAttempt(ctx context.Context, userID, id int64) (*quiz.UserQuiz, error) {
	attempt, err := s.repos.Quiz.GetAttempt(ctx, userID, id)
	if repository.IsNotFound(err) {
		return nil, errs.NewMissingError(errs.CodeUserQuizNotFound, "Quiz attempt not found")
	}
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

func unknownWords(ids []int64) error {
	code := errs.CodeWordNotFound
	fieldErrors := make([]errs.FieldError, len(ids))
	for i, id := range ids {
		fieldErrors[i] = errs.FieldError{Field: "word_list", Error: fmt.Sprintf("word %d does not exist", id)}
	}
	return errs.NewBadRequestError("The quiz references words that do not exist", true, &code, fieldErrors, nil)
}
