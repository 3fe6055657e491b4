package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/vocab/internal/config"
	"github.com/deppfellow/vocab/internal/errs"
	"github.com/deppfellow/vocab/internal/lib/importer"
	"github.com/deppfellow/vocab/internal/model"
	"github.com/deppfellow/vocab/internal/model/progress"
	"github.com/deppfellow/vocab/internal/model/quiz"
	"github.com/deppfellow/vocab/internal/model/user"
	"github.com/deppfellow/vocab/internal/model/word"
	"github.com/deppfellow/vocab/internal/repository"
	"github.com/deppfellow/vocab/internal/sqlerr"
	"github.com/deppfellow/vocab/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T, opts ...func(*config.Config)) *Services {
	t.Helper()

	s := testutil.NewServer(t, opts...)
	services, err := NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)
	return services
}

func requireCode(t *testing.T, err error, status int, code string) {
	t.Helper()

	httpErr, ok := errs.As(err)
	require.True(t, ok, "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
}

func ptr[T any](v T) *T {
	return &v
}

func register(t *testing.T, services *Services, email string) *user.User {
	t.Helper()

	u, err := services.User.Register(context.Background(), &user.RegisterPayload{Name: "A", Email: email, Password: "p"})
	require.NoError(t, err)
	return u
}

func addWord(t *testing.T, services *Services, text string) *word.Word {
	t.Helper()

	w, err := services.Word.Create(context.Background(), &word.CreatePayload{Word: text, Definition: "short-lived"})
	require.NoError(t, err)
	return w
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)

	first, err := services.User.Register(ctx, &user.RegisterPayload{Name: "A", Email: "a@x.com", Password: "p", Points: ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, 0, first.Points)
	assert.NotEqual(t, "p", first.Password)

	_, err = services.User.Register(ctx, &user.RegisterPayload{Name: "B", Email: "a@x.com", Password: "q"})
	requireCode(t, err, http.StatusBadRequest, errs.CodeUserAlreadyExists)

	stored, err := services.User.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.Name)
	assert.Equal(t, first.Password, stored.Password)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)
	u := register(t, services, "a@x.com")

	resp, err := services.User.Authenticate(ctx, &user.LoginPayload{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.ID)

	_, err = services.User.Authenticate(ctx, &user.LoginPayload{Email: "a@x.com", Password: "wrong"})
	requireCode(t, err, http.StatusUnauthorized, errs.CodeInvalidCredentials)

	_, err = services.User.Authenticate(ctx, &user.LoginPayload{Email: "nobody@x.com", Password: "p"})
	requireCode(t, err, http.StatusNotFound, errs.CodeUserNotFound)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)
	a := register(t, services, "a@x.com")
	register(t, services, "b@x.com")

	updated, err := services.User.Update(ctx, &user.UpdatePayload{ID: a.ID, Points: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Points)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Equal(t, a.Password, updated.Password)

	_, err = services.User.Update(ctx, &user.UpdatePayload{ID: a.ID, Email: ptr("b@x.com")})
	requireCode(t, err, http.StatusBadRequest, errs.CodeUserAlreadyExists)

	// Keeping the same email is not a collision.
	_, err = services.User.Update(ctx, &user.UpdatePayload{ID: a.ID, Email: ptr("a@x.com")})
	require.NoError(t, err)

	_, err = services.User.Update(ctx, &user.UpdatePayload{ID: 99, Name: ptr("Z")})
	requireCode(t, err, http.StatusNotFound, errs.CodeUserNotFound)

	_, err = services.User.Update(ctx, &user.UpdatePayload{ID: a.ID, Password: ptr("new")})
	require.NoError(t, err)

	_, err = services.User.Authenticate(ctx, &user.LoginPayload{Email: "a@x.com", Password: "p"})
	requireCode(t, err, http.StatusUnauthorized, errs.CodeInvalidCredentials)

	resp, err := services.User.Authenticate(ctx, &user.LoginPayload{Email: "a@x.com", Password: "new"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, resp.ID)
}

func TestUserService_GetsReturnNilWhenAbsent(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)

	u, err := services.User.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = services.User.GetByEmail(ctx, "none@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	users, err := services.User.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestWordService_Uniqueness(t *testing.T) {
	ctx := context.Background()

	t.Run("enforced", func(t *testing.T) {
		services := newServices(t)
		w := addWord(t, services, "ephemeral")
		assert.Equal(t, word.DefaultDifficulty, w.Difficulty)

		_, err := services.Word.Create(ctx, &word.CreatePayload{Word: "ephemeral", Definition: "again"})
		requireCode(t, err, http.StatusBadRequest, errs.CodeWordAlreadyExists)
	})

	t.Run("disabled", func(t *testing.T) {
		services := newServices(t, func(cfg *config.Config) { cfg.Catalog.UniqueWords = false })
		addWord(t, services, "ephemeral")
		addWord(t, services, "ephemeral")

		words, err := services.Word.List(ctx)
		require.NoError(t, err)
		assert.Len(t, words, 2)
	})
}

func TestWordService_GetByID(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)

	w, err := services.Word.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, w)

	created := addWord(t, services, "ephemeral")
	w, err = services.Word.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ephemeral", w.Word)
}

func TestWordService_Import(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)
	addWord(t, services, "apple")

	report, err := services.Word.Import(ctx, []importer.Row{
		{Line: 2, Payload: word.CreatePayload{Word: "pear", Definition: "a fruit"}},
		{Line: 3, Payload: word.CreatePayload{Word: "apple", Definition: "a fruit"}},
		{Line: 4, Payload: word.CreatePayload{Word: "plum"}},
		{Line: 5, Payload: word.CreatePayload{Word: "pear", Definition: "twice"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, 3, report.Skipped[0].Line)
	assert.Equal(t, 5, report.Skipped[1].Line)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 4, report.Failed[0].Line)
	assert.Contains(t, report.Failed[0].Reason, "definition")
}

func TestProgressService_UpsertTwiceUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)
	u := register(t, services, "a@x.com")
	w := addWord(t, services, "ephemeral")

	payload := &progress.UpsertPayload{UserID: u.ID, WordID: w.ID, Status: "active", ReviewSpacing: 1}
	require.NoError(t, payload.Validate())
	first, err := services.Progress.Upsert(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 0, first.ReviewCount)
	assert.NotNil(t, first.ReviewLastDate)

	payload = &progress.UpsertPayload{UserID: u.ID, WordID: w.ID, Status: "active", ReviewCount: 1, ReviewSpacing: 1}
	require.NoError(t, payload.Validate())
	second, err := services.Progress.Upsert(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.ReviewCount)

	records, err := services.Progress.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestProgressService_UpsertByID(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)
	u := register(t, services, "a@x.com")
	w := addWord(t, services, "ephemeral")
	reviewed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := services.Progress.Upsert(ctx, &progress.UpsertPayload{UserID: u.ID, WordID: w.ID})
	require.NoError(t, err)
	assert.Equal(t, progress.StatusNotStarted, first.Status)

	payload := &progress.UpsertPayload{
		UserID:         u.ID,
		WordID:         w.ID,
		ID:             ptr(first.ID),
		BodyUserID:     ptr(u.ID),
		Status:         "not-started",
		ReviewCount:    3,
		ReviewLastDate: &reviewed,
	}
	require.NoError(t, payload.Validate())

	updated, err := services.Progress.Upsert(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, progress.StatusNotStarted, updated.Status)
	assert.Equal(t, 3, updated.ReviewCount)
	require.NotNil(t, updated.ReviewLastDate)
	assert.True(t, reviewed.Equal(*updated.ReviewLastDate))
}

func TestProgressService_UpsertMissingReferences(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)
	u := register(t, services, "a@x.com")

	_, err := services.Progress.Upsert(ctx, &progress.UpsertPayload{UserID: 42, WordID: 1})
	requireCode(t, err, http.StatusNotFound, errs.CodeUserNotFound)

	_, err = services.Progress.Upsert(ctx, &progress.UpsertPayload{UserID: u.ID, WordID: 1})
	requireCode(t, err, http.StatusNotFound, errs.CodeWordNotFound)

	// An id that does not belong to the pair falls through to the checks.
	_, err = services.Progress.Upsert(ctx, &progress.UpsertPayload{UserID: 42, WordID: 1, ID: ptr(int64(1))})
	requireCode(t, err, http.StatusNotFound, errs.CodeUserNotFound)

	records, err := services.Progress.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestProgressService_Mismatch(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)

	_, err := services.Progress.Upsert(ctx, &progress.UpsertPayload{UserID: 1, WordID: 1, BodyUserID: ptr(int64(2))})
	requireCode(t, err, http.StatusBadRequest, errs.CodeUserIDMismatch)

	_, err = services.Progress.Upsert(ctx, &progress.UpsertPayload{UserID: 1, WordID: 1, BodyWordID: ptr(int64(2))})
	requireCode(t, err, http.StatusBadRequest, errs.CodeWordIDMismatch)
}

func TestProgressService_GetReturnsNil(t *testing.T) {
	record, err := newServices(t).Progress.Get(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestQuizService_CreateQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("permissive by default", func(t *testing.T) {
		services := newServices(t)
		qz, err := services.Quiz.CreateQuiz(ctx, &quiz.CreateQuizPayload{WordList: model.IDList{9, 8}})
		require.NoError(t, err)
		assert.Equal(t, model.IDList{9, 8}, qz.WordList)

		got, err := services.Quiz.GetQuiz(ctx, qz.ID)
		require.NoError(t, err)
		assert.Equal(t, qz.ID, got.ID)

		missing, err := services.Quiz.GetQuiz(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("validated", func(t *testing.T) {
		services := newServices(t, func(cfg *config.Config) { cfg.Catalog.ValidateQuizWords = true })
		w := addWord(t, services, "ephemeral")

		_, err := services.Quiz.CreateQuiz(ctx, &quiz.CreateQuizPayload{WordList: model.IDList{w.ID, 9}})
		requireCode(t, err, http.StatusBadRequest, errs.CodeWordNotFound)

		httpErr, _ := errs.As(err)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "word 9 does not exist", httpErr.Errors[0].Error)

		_, err = services.Quiz.CreateQuiz(ctx, &quiz.CreateQuizPayload{WordList: model.IDList{w.ID}})
		require.NoError(t, err)
	})
}

func TestQuizService_Attempts(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)
	u := register(t, services, "a@x.com")
	qz, err := services.Quiz.CreateQuiz(ctx, &quiz.CreateQuizPayload{WordList: model.IDList{1, 2}})
	require.NoError(t, err)

	_, err = services.Quiz.ListAttempts(ctx, u.ID)
	requireCode(t, err, http.StatusNotFound, errs.CodeUserQuizNotFound)

	_, err = services.Quiz.CreateAttempt(ctx, &quiz.CreateAttemptPayload{PathUserID: 5, UserID: 6, QuizID: qz.ID})
	requireCode(t, err, http.StatusBadRequest, errs.CodeUserIDMismatch)

	attempt, err := services.Quiz.CreateAttempt(ctx, &quiz.CreateAttemptPayload{
		PathUserID:   u.ID,
		UserID:       u.ID,
		QuizID:       qz.ID,
		CorrectWords: model.IDList{1},
		ScoreRaw:     10,
		ScorePercent: 12.5,
	})
	require.NoError(t, err)
	// Scores are stored as submitted, not recomputed.
	assert.Equal(t, 10, attempt.ScoreRaw)
	assert.Equal(t, model.IDList{}, attempt.IncorrectWords)
	assert.False(t, attempt.QuizDate.IsZero())

	attempts, err := services.Quiz.ListAttempts(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)

	got, err := services.Quiz.GetAttempt(ctx, u.ID, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, got.ID)

	_, err = services.Quiz.GetAttempt(ctx, u.ID+1, attempt.ID)
	requireCode(t, err, http.StatusNotFound, errs.CodeUserQuizNotFound)

	_, err = services.Quiz.CreateAttempt(ctx, &quiz.CreateAttemptPayload{PathUserID: u.ID, UserID: u.ID, QuizID: 77})
	require.Error(t, err)
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))
	requireCode(t, sqlerr.HandleError(err), http.StatusBadRequest, "USER_QUIZ_NOT_FOUND")
}
