package handler

import (
	"net/url"

	"github.com/deppfellow/vocab/internal/model/user"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/deppfellow/vocab/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) Login(c echo.Context, payload *user.LoginPayload) (*user.LoginResponse, error) {
	return h.userService.Authenticate(c.Request().Context(), payload)
}

func (h *UserHandler) Register(c echo.Context, payload *user.RegisterPayload) (*user.User, error) {
	return h.userService.Register(c.Request().Context(), payload)
}

func (h *UserHandler) Update(c echo.Context, payload *user.UpdatePayload) (*user.User, error) {
	return h.userService.Update(c.Request().Context(), payload)
}

func (h *UserHandler) List(c echo.Context, _ *user.ListPayload) ([]user.User, error) {
	return h.userService.List(c.Request().Context())
}

func (h *UserHandler) GetByID(c echo.Context, payload *user.GetByIDPayload) (*user.User, error) {
	return h.userService.GetByID(c.Request().Context(), payload.ID)
}

// GetByEmail accepts the address percent-encoded ("a%40x.com") or not.
func (h *UserHandler) GetByEmail(c echo.Context, payload *user.GetByEmailPayload) (*user.User, error) {
	email, err := url.PathUnescape(payload.Email)
	if err != nil {
		email = payload.Email
	}
	return h.userService.GetByEmail(c.Request().Context(), email)
}
