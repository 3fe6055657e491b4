package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/vocab/internal/config"
	"github.com/deppfellow/vocab/internal/handler"
	"github.com/deppfellow/vocab/internal/repository"
	"github.com/deppfellow/vocab/internal/service"
	"github.com/deppfellow/vocab/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type object = map[string]any

func newTestRouter(t *testing.T, opts ...func(*config.Config)) *echo.Echo {
	t.Helper()

	s := testutil.NewServer(t, opts...)
	services, err := service.NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services))
}

func errorCode(t *testing.T, body object) string {
	t.Helper()
	code, ok := body["code"].(string)
	require.True(t, ok, "missing error code in %v", body)
	return code
}

func TestAccountScenario(t *testing.T) {
	r := newTestRouter(t)

	rec := testutil.SendRequest(t, r, http.MethodPost, "/users/register",
		object{"name": "A", "email": "a@x.com", "password": "p", "points": 50})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := testutil.ParseResponse[object](t, rec)
	assert.EqualValues(t, 1, created["id"])
	assert.EqualValues(t, 0, created["points"])
	assert.NotContains(t, created, "password")

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/register",
		object{"name": "B", "email": "a@x.com", "password": "q"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", errorCode(t, testutil.ParseResponse[object](t, rec)))

	rec = testutil.SendRequest(t, r, http.MethodPost, "/login/", object{"email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, object{"id": float64(1)}, testutil.ParseResponse[object](t, rec))

	rec = testutil.SendRequest(t, r, http.MethodPost, "/login/", object{"email": "a@x.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, testutil.ParseResponse[object](t, rec)))

	rec = testutil.SendRequest(t, r, http.MethodPost, "/login", object{"email": "nobody@x.com", "password": "p"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The first account survives the rejected duplicate.
	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/by-email/a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A", testutil.ParseResponse[object](t, rec)["name"])

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.ParseResponse[[]object](t, rec), 1)
}

func TestUserUpdateAndLookups(t *testing.T) {
	r := newTestRouter(t)

	rec := testutil.SendRequest(t, r, http.MethodPost, "/users/register",
		object{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/1/update",
		object{"points": 12, "password": "new"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 12, testutil.ParseResponse[object](t, rec)["points"])

	rec = testutil.SendRequest(t, r, http.MethodPost, "/login", object{"email": "a@x.com", "password": "new"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/99/update", object{"points": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/by-id/99", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/by-id/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProgressScenario(t *testing.T) {
	r := newTestRouter(t)

	rec := testutil.SendRequest(t, r, http.MethodPost, "/users/register",
		object{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/words/",
		object{"word": "ephemeral", "definition": "short-lived"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	word := testutil.ParseResponse[object](t, rec)
	assert.EqualValues(t, 1, word["id"])

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/1/user_word_progress/1",
		object{"status": "active", "review_count": 0, "review_spacing": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := testutil.ParseResponse[object](t, rec)
	assert.NotNil(t, first["review_last_date"])

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/1/user_word_progress/1",
		object{"status": "active", "review_count": 1, "review_spacing": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := testutil.ParseResponse[object](t, rec)
	assert.Equal(t, first["id"], second["id"])
	assert.EqualValues(t, 1, second["review_count"])

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/1/user_word_progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.ParseResponse[[]object](t, rec), 1)

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/1/user_word_progress/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first["id"], testutil.ParseResponse[object](t, rec)["id"])

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/7/user_word_progress/1",
		object{"status": "active"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, testutil.ParseResponse[object](t, rec)))

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/7/user_word_progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.ParseResponse[[]object](t, rec))

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/1/user_word_progress/1",
		object{"user_id": 2, "status": "active"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_ID_MISMATCH", errorCode(t, testutil.ParseResponse[object](t, rec)))

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/1/user_word_progress/1",
		object{"status": "forgotten"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/1/user_word_progress/1",
		object{"review_count": 2, "review_spacing": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	missing := testutil.ParseResponse[object](t, rec)
	assert.Equal(t, []any{object{"field": "status", "error": "is required"}}, missing["errors"])
}

func TestQuizScenario(t *testing.T) {
	r := newTestRouter(t)

	rec := testutil.SendRequest(t, r, http.MethodPost, "/users/register",
		object{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/quizzes",
		object{"word_list": []int{1, 2}, "tags": []string{"daily"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	quiz := testutil.ParseResponse[object](t, rec)
	assert.Equal(t, []any{float64(1), float64(2)}, quiz["word_list"])

	rec = testutil.SendRequest(t, r, http.MethodGet, "/quizzes/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/1/user_quizzes", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/5/user_quizzes",
		object{"user_id": 6, "quiz_id": 1, "score_raw": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_ID_MISMATCH", errorCode(t, testutil.ParseResponse[object](t, rec)))

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/1/user_quizzes",
		object{"user_id": 1, "quiz_id": 1, "correct_words": []int{1}, "incorrect_words": []int{2}, "score_raw": 1, "score_percent": 50})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	attempt := testutil.ParseResponse[object](t, rec)
	assert.NotEmpty(t, attempt["quiz_date"])

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/1/user_quizzes/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.ParseResponse[[]object](t, rec), 1)

	rec = testutil.SendRequest(t, r, http.MethodGet, "/users/1/user_quizzes/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/users/1/user_quizzes",
		object{"user_id": 1, "quiz_id": 42, "score_raw": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_QUIZ_NOT_FOUND", errorCode(t, testutil.ParseResponse[object](t, rec)))
}

func TestWordValidationAndUniqueness(t *testing.T) {
	r := newTestRouter(t)

	rec := testutil.SendRequest(t, r, http.MethodPost, "/words", object{"word": "ephemeral"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/words", object{"word": "ephemeral", "definition": "short-lived"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.SendRequest(t, r, http.MethodPost, "/words", object{"word": "ephemeral", "definition": "again"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "WORD_ALREADY_EXISTS", errorCode(t, testutil.ParseResponse[object](t, rec)))

	rec = testutil.SendRequest(t, r, http.MethodGet, "/words", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	words := testutil.ParseResponse[[]object](t, rec)
	require.Len(t, words, 1)
	assert.Equal(t, "medium", words[0]["difficulty"])
}

func TestWordDuplicatesAllowedWhenConfigured(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) { cfg.Catalog.UniqueWords = false })

	for range 2 {
		rec := testutil.SendRequest(t, r, http.MethodPost, "/words", object{"word": "ephemeral", "definition": "short-lived"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := testutil.SendRequest(t, r, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := testutil.ParseResponse[object](t, rec)
	assert.Equal(t, "healthy", health["status"])
	assert.Contains(t, health["checks"], "database")

	rec = testutil.SendRequest(t, r, http.MethodGet, "/docs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = testutil.SendRequest(t, r, http.MethodGet, "/static/openapi.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi"`)

	rec = testutil.SendRequest(t, r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientIPIsSocketPeerByDefault(t *testing.T) {
	r := newTestRouter(t)
	require.NotNil(t, r.IPExtractor)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.7:40000"
	req.Header.Set(echo.HeaderXForwardedFor, "198.51.100.1")
	req.Header.Set(echo.HeaderXRealIP, "198.51.100.2")

	assert.Equal(t, "203.0.113.7", r.IPExtractor(req))
}
