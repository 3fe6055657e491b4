package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/vocab/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	httpErr, ok := errs.As(err)
	require.True(t, ok, "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_Postgres(t *testing.T) {
	tests := []struct {
		name       string
		pgErr      *pgconn.PgError
		wantCode   string
		wantStatus int
		wantField  string
	}{
		{
			name:       "unique email",
			pgErr:      &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"},
			wantCode:   "USER_ALREADY_EXISTS",
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
		},
		{
			name:       "foreign key",
			pgErr:      &pgconn.PgError{Code: "23503", TableName: "user_quizzes", ConstraintName: "user_quizzes_quiz_id_fkey"},
			wantCode:   "USER_QUIZ_NOT_FOUND",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not null",
			pgErr:      &pgconn.PgError{Code: "23502", TableName: "words", ColumnName: "definition"},
			wantCode:   "WORD_REQUIRED",
			wantStatus: http.StatusBadRequest,
			wantField:  "definition",
		},
		{
			name:       "check",
			pgErr:      &pgconn.PgError{Code: "23514", TableName: "user_word_progress"},
			wantCode:   "USER_WORD_PROGRESS_INVALID",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "other",
			pgErr:      &pgconn.PgError{Code: "42P01"},
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(fmt.Errorf("wrapped: %w", tt.pgErr)))
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			if tt.wantField != "" {
				require.NotEmpty(t, httpErr.Errors)
				assert.Equal(t, tt.wantField, httpErr.Errors[0].Field)
			}
		})
	}
}

func TestHandleError_PostgresForeignKeyMessage(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23503", TableName: "user_quizzes", ConstraintName: "user_quizzes_user_id_fkey"})
	assert.Equal(t, "The referenced User does not exist", asHTTPError(t, err).Message)
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT NOT NULL UNIQUE);
		CREATE TABLE quizzes (id INTEGER PRIMARY KEY);
		CREATE TABLE user_quizzes (
			id INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users (id),
			quiz_id INTEGER NOT NULL REFERENCES quizzes (id),
			score_raw INTEGER NOT NULL CHECK (score_raw >= 0)
		);`)
	require.NoError(t, err)
	return db
}

func TestHandleError_SQLite(t *testing.T) {
	db := openSQLite(t)

	_, err := db.Exec(`INSERT INTO users (email) VALUES ('a@x.com')`)
	require.NoError(t, err)

	t.Run("unique", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO users (email) VALUES ('a@x.com')`)
		require.Error(t, err)
		assert.Equal(t, UniqueViolation, ErrCode(err))

		httpErr := asHTTPError(t, HandleError(err))
		assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	})

	t.Run("not null", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO users (email) VALUES (NULL)`)
		require.Error(t, err)

		httpErr := asHTTPError(t, HandleError(err))
		assert.Equal(t, "USER_REQUIRED", httpErr.Code)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "email", httpErr.Errors[0].Field)
	})

	t.Run("foreign key uses table hint", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO user_quizzes (user_id, quiz_id, score_raw) VALUES (1, 99, 0)`)
		require.Error(t, err)

		httpErr := asHTTPError(t, HandleError(WithTable("user_quizzes", err)))
		assert.Equal(t, "USER_QUIZ_NOT_FOUND", httpErr.Code)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	})

	t.Run("check", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO quizzes (id) VALUES (1)`)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO user_quizzes (user_id, quiz_id, score_raw) VALUES (1, 1, -1)`)
		require.Error(t, err)

		httpErr := asHTTPError(t, HandleError(WithTable("user_quizzes", err)))
		assert.Equal(t, "USER_QUIZ_INVALID", httpErr.Code)
	})
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(WithTable("words", sql.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "WORD_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Word not found", httpErr.Message)

	generic := asHTTPError(t, HandleError(sql.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", generic.Code)
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	original := errs.NewMissingError(errs.CodeUserNotFound, "user not found")
	assert.Same(t, original, HandleError(original))

	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestWithTable_Nil(t *testing.T) {
	assert.NoError(t, WithTable("users", nil))
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "user", singular("users"))
	assert.Equal(t, "quiz", singular("quizzes"))
	assert.Equal(t, "user_quiz", singular("user_quizzes"))
	assert.Equal(t, "category", singular("categories"))
	assert.Equal(t, "user_word_progress", singular("user_word_progress"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Empty(t, extractColumnForUniqueViolation(""))
}

func TestParseSQLiteTarget(t *testing.T) {
	table, column := parseSQLiteTarget("UNIQUE constraint failed: user_word_progress.user_id, user_word_progress.word_id")
	assert.Equal(t, "user_word_progress", table)
	assert.Equal(t, "user_id", column)

	table, column = parseSQLiteTarget("FOREIGN KEY constraint failed")
	assert.Empty(t, table)
	assert.Empty(t, column)
}

func TestErrorFrom(t *testing.T) {
	assert.Nil(t, ErrorFrom(errors.New("plain")))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))

	sqlErr := ErrorFrom(&pgconn.PgError{Code: "23503", ConstraintName: "user_word_progress_word_id_fkey"})
	require.NotNil(t, sqlErr)
	assert.Equal(t, ForeignKeyViolation, sqlErr.Code)
	assert.Equal(t, "word_id", sqlErr.ColumnName)
}

func TestMapCodeAndSeverity(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, Other, MapCode("XX000"))
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("bogus"))
}
