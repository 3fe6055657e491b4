// Package handler is the first layer after the router.
//
// It binds and validates requests using the validation package, calls
// the service layer and writes the JSON response. Errors are returned
// to the global error handler and never written here.
package handler

import (
	"github.com/deppfellow/vocab/internal/server"
	"github.com/deppfellow/vocab/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	User     *UserHandler
	Word     *WordHandler
	Progress *ProgressHandler
	Quiz     *QuizHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		User:     NewUserHandler(s, services.User),
		Word:     NewWordHandler(s, services.Word),
		Progress: NewProgressHandler(s, services.Progress),
		Quiz:     NewQuizHandler(s, services.Quiz),
	}
}
