// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/vocab/internal/handler"
	"github.com/deppfellow/vocab/internal/middleware"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the echo instance with every route registered.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.IPExtractor = middleware.IPExtractor(s.Config.Server)

	// "/words/" and "/words" resolve to the same route.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerUserRoutes(router, h, middlewares)
	registerWordRoutes(router, h)
	registerProgressRoutes(router, h)
	registerQuizRoutes(router, h)

	return router
}

func registerUserRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.POST("/login", handler.Handle(h.User.Handler, h.User.Login, http.StatusOK), m.RateLimit.Login())

	users := r.Group("/users")
	users.GET("", handler.Handle(h.User.Handler, h.User.List, http.StatusOK))
	users.POST("/register", handler.Handle(h.User.Handler, h.User.Register, http.StatusOK))
	users.POST("/:id/update", handler.Handle(h.User.Handler, h.User.Update, http.StatusOK))
	users.GET("/by-id/:id", handler.Handle(h.User.Handler, h.User.GetByID, http.StatusOK))
	users.GET("/by-email/:email", handler.Handle(h.User.Handler, h.User.GetByEmail, http.StatusOK))
}

func registerWordRoutes(r *echo.Echo, h *handler.Handlers) {
	words := r.Group("/words")
	words.GET("", handler.Handle(h.Word.Handler, h.Word.List, http.StatusOK))
	words.POST("", handler.Handle(h.Word.Handler, h.Word.Create, http.StatusOK))
	words.GET("/:id", handler.Handle(h.Word.Handler, h.Word.GetByID, http.StatusOK))
}

func registerProgressRoutes(r *echo.Echo, h *handler.Handlers) {
	progress := r.Group("/users/:uid/user_word_progress")
	progress.GET("", handler.Handle(h.Progress.Handler, h.Progress.List, http.StatusOK))
	progress.GET("/:wid", handler.Handle(h.Progress.Handler, h.Progress.Get, http.StatusOK))
	progress.POST("/:wid", handler.Handle(h.Progress.Handler, h.Progress.Upsert, http.StatusOK))
}

func registerQuizRoutes(r *echo.Echo, h *handler.Handlers) {
	quizzes := r.Group("/quizzes")
	quizzes.GET("", handler.Handle(h.Quiz.Handler, h.Quiz.ListQuizzes, http.StatusOK))
	quizzes.POST("", handler.Handle(h.Quiz.Handler, h.Quiz.CreateQuiz, http.StatusOK))
	quizzes.GET("/:id", handler.Handle(h.Quiz.Handler, h.Quiz.GetQuiz, http.StatusOK))

	attempts := r.Group("/users/:uid/user_quizzes")
	attempts.GET("", handler.Handle(h.Quiz.Handler, h.Quiz.ListAttempts, http.StatusOK))
	attempts.POST("", handler.Handle(h.Quiz.Handler, h.Quiz.CreateAttempt, http.StatusOK))
	attempts.GET("/:id", handler.Handle(h.Quiz.Handler, h.Quiz.GetAttempt, http.StatusOK))
}
