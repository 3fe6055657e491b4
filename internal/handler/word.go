package handler

import (
	"github.com/deppfellow/vocab/internal/model/word"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/deppfellow/vocab/internal/service"
	"github.com/labstack/echo/v4"
)

type WordHandler struct {
	Handler
	wordService *service.WordService
}

func NewWordHandler(s *server.Server, wordService *service.WordService) *WordHandler {
	return &WordHandler{
		Handler:     NewHandler(s),
		wordService: wordService,
	}
}

func (h *WordHandler) Create(c echo.Context, payload *word.CreatePayload) (*word.Word, error) {
	return h.wordService.Create(c.Request().Context(), payload)
}

func (h *WordHandler) List(c echo.Context, _ *word.ListPayload) ([]word.Word, error) {
	return h.wordService.List(c.Request().Context())
}

func (h *WordHandler) GetByID(c echo.Context, payload *word.GetByIDPayload) (*word.Word, error) {
	return h.wordService.GetByID(c.Request().Context(), payload.ID)
}
