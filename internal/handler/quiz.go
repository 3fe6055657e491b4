package handler

import (
	"github.com/deppfellow/vocab/internal/model/quiz"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/deppfellow/vocab/internal/service"
	"github.com/labstack/echo/v4"
)

type QuizHandler struct {
	Handler
	quizService *service.QuizService
}

func NewQuizHandler(s *server.Server, quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		Handler:     NewHandler(s),
		quizService: quizService,
	}
}

func (h *QuizHandler) CreateQuiz(c echo.Context, payload *quiz.CreateQuizPayload) (*quiz.Quiz, error) {
	return h.quizService.CreateQuiz(c.Request().Context(), payload)
}

func (h *QuizHandler) ListQuizzes(c echo.Context, _ *quiz.ListQuizzesPayload) ([]quiz.Quiz, error) {
	return h.quizService.ListQuizzes(c.Request().Context())
}

func (h *QuizHandler) GetQuiz(c echo.Context, payload *quiz.GetQuizPayload) (*quiz.Quiz, error) {
	return h.quizService.GetQuiz(c.Request().Context(), payload.ID)
}

func (h *QuizHandler) CreateAttempt(c echo.Context, payload *quiz.CreateAttemptPayload) (*quiz.UserQuiz, error) {
	return h.quizService.CreateAttempt(c.Request().Context(), payload)
}

func (h *QuizHandler) ListAttempts(c echo.Context, payload *quiz.ListAttemptsPayload) ([]quiz.UserQuiz, error) {
	return h.quizService.ListAttempts(c.Request().Context(), payload.UserID)
}

func (h *QuizHandler) GetAttempt(c echo.Context, payload *quiz.GetAttemptPayload) (*quiz.UserQuiz, error) {
	return h.quizService.GetAttempt(c.Request().Context(), payload.UserID, payload.ID)
}
