package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/vocab/internal/middleware"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/deppfellow/vocab/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds shared application dependencies and is embedded by the
// concrete handlers.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Payload is satisfied by pointers to request structs. Handle allocates
// a fresh Req for every request.
type Payload[Req any] interface {
	*Req
	validation.Validatable
}

// ResponseHandler writes a successful result and describes it for logs
// and traces.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// AddAttributes records how many items a list endpoint returned and
// whether a single lookup came back empty.
func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if result == nil {
		return
	}
	v := reflect.ValueOf(result)
	switch v.Kind() {
	case reflect.Slice:
		txn.AddAttribute("result.count", v.Len())
	case reflect.Pointer:
		txn.AddAttribute("result.found", !v.IsNil())
	}
}

// recordPhase stores the outcome and duration of one pipeline phase
// ("validation" or "handler") on the transaction.
func recordPhase(txn *newrelic.Transaction, phase string, err error, d time.Duration) {
	if txn == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	txn.AddAttribute(phase+".status", status)
	txn.AddAttribute(phase+".duration_ms", d.Milliseconds())
}

// handleRequest is the shared pipeline behind every endpoint: a fresh
// request value is bound and validated, the endpoint runs, then the
// result is written. Errors are returned for the global error handler.
func handleRequest[Req any, PReq Payload[Req]](
	h Handler,
	c echo.Context,
	handler func(c echo.Context, req PReq) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()
	req := PReq(new(Req))

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	err := validation.BindAndValidate(c, req)
	validationDuration := time.Since(validationStart)
	recordPhase(txn, "validation", err, validationDuration)
	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")
		return err
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)
	recordPhase(txn, "handler", err, handlerDuration)
	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")
		return err
	}

	totalDuration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	// Handlers are thin, so a slow one almost always means slow queries.
	if threshold := h.slowThreshold(); threshold > 0 && handlerDuration > threshold {
		logger.Warn().
			Dur("handler_duration", handlerDuration).
			Dur("threshold", threshold).
			Msg("slow request")
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed")

	return responseHandler.Handle(c, result)
}

func (h Handler) slowThreshold() time.Duration {
	if h.server == nil || h.server.Config.Observability == nil {
		return 0
	}
	return h.server.Config.Observability.Logging.SlowQueryThreshold
}

// Handle wraps a typed endpoint into an echo.HandlerFunc. The endpoint
// receives a bound and validated request and returns the response body:
//
//	g.POST("/register", handler.Handle(h.Handler, h.Register, http.StatusOK))
func Handle[Req any, PReq Payload[Req], Res any](
	h Handler,
	handler func(c echo.Context, req PReq) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest[Req, PReq](h, c, func(c echo.Context, req PReq) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
