package repository

import (
	"context"

	"github.com/deppfellow/vocab/internal/model/quiz"
	"github.com/deppfellow/vocab/internal/sqlerr"
	"github.com/jmoiron/sqlx"
)

const (
	quizColumns     = `id, word_list, tags, created_at`
	userQuizColumns = `id, user_id, quiz_id, correct_words, incorrect_words, score_raw, score_percent, quiz_date, created_at`
)

type QuizRepository struct {
	q sqlx.ExtContext
}

func NewQuizRepository(q sqlx.ExtContext) *QuizRepository {
	return &QuizRepository{q: q}
}

func (r *QuizRepository) CreateQuiz(ctx context.Context, qz *quiz.Quiz) (*quiz.Quiz, error) {
	id, err := insertReturningID(ctx, r.q,
		`INSERT INTO quizzes (word_list, tags) VALUES (?, ?) RETURNING id`,
		qz.WordList, qz.Tags,
	)
	if err != nil {
		return nil, sqlerr.WithTable("quizzes", err)
	}
	return r.GetQuiz(ctx, id)
}

func (r *QuizRepository) GetQuiz(ctx context.Context, id int64) (*quiz.Quiz, error) {
	var qz quiz.Quiz
	if err := get(ctx, r.q, &qz, `SELECT `+quizColumns+` FROM quizzes WHERE id = ?`, id); err != nil {
		return nil, sqlerr.WithTable("quizzes", err)
	}
	return &qz, nil
}

func (r *QuizRepository) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	quizzes := []quiz.Quiz{}
	if err := selectAll(ctx, r.q, &quizzes, `SELECT `+quizColumns+` FROM quizzes ORDER BY id`); err != nil {
		return nil, sqlerr.WithTable("quizzes", err)
	}
	return quizzes, nil
}

// CreateAttempt stores an attempt verbatim. Unknown users or quizzes fail
// on the foreign keys.
func (r *QuizRepository) CreateAttempt(ctx context.Context, a *quiz.UserQuiz) (*quiz.UserQuiz, error) {
	id, err := insertReturningID(ctx, r.q,
		`INSERT INTO user_quizzes (user_id, quiz_id, correct_words, incorrect_words, score_raw, score_percent, quiz_date)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		a.UserID, a.QuizID, a.CorrectWords, a.IncorrectWords, a.ScoreRaw, a.ScorePercent, a.QuizDate,
	)
	if err != nil {
		return nil, sqlerr.WithTable("user_quizzes", err)
	}
	return r.GetAttempt(ctx, a.UserID, id)
}

func (r *QuizRepository) ListAttempts(ctx context.Context, userID int64) ([]quiz.UserQuiz, error) {
	attempts := []quiz.UserQuiz{}
	err := selectAll(ctx, r.q, &attempts,
		`SELECT `+userQuizColumns+` FROM user_quizzes WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, sqlerr.WithTable("user_quizzes", err)
	}
	return attempts, nil
}

func (r *QuizRepository) GetAttempt(ctx context.Context, userID, id int64) (*quiz.UserQuiz, error) {
	var a quiz.UserQuiz
	err := get(ctx, r.q, &a,
		`SELECT `+userQuizColumns+` FROM user_quizzes WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return nil, sqlerr.WithTable("user_quizzes", err)
	}
	return &a, nil
}
