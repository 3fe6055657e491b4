package handler

import (
	"github.com/deppfellow/vocab/internal/model/progress"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/deppfellow/vocab/internal/service"
	"github.com/labstack/echo/v4"
)

type ProgressHandler struct {
	Handler
	progressService *service.ProgressService
}

func NewProgressHandler(s *server.Server, progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		Handler:         NewHandler(s),
		progressService: progressService,
	}
}

func (h *ProgressHandler) Upsert(c echo.Context, payload *progress.UpsertPayload) (*progress.Progress, error) {
	return h.progressService.Upsert(c.Request().Context(), payload)
}

func (h *ProgressHandler) List(c echo.Context, payload *progress.ListPayload) ([]progress.Progress, error) {
	return h.progressService.ListByUser(c.Request().Context(), payload.UserID)
}

func (h *ProgressHandler) Get(c echo.Context, payload *progress.GetPayload) (*progress.Progress, error) {
	return h.progressService.Get(c.Request().Context(), payload.UserID, payload.WordID)
}
