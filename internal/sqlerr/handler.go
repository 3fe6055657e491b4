package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/deppfellow/vocab/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	uniqueKeyPattern  = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	foreignKeyPattern = regexp.MustCompile(`_([a-z]+_id)_fkey$`)
)

// ErrorFrom normalizes the first driver error found in err's chain. It
// returns nil when err did not come from postgres or sqlite.
func ErrorFrom(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr = ConvertPgError(pgErr)
		if sqlErr.Code == ForeignKeyViolation && sqlErr.ColumnName == "" {
			sqlErr.ColumnName = extractColumnForForeignKey(sqlErr.ConstraintName)
		}
		return sqlErr
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr)
	}

	return nil
}

// ErrCode reports the Code of a driver error, or Other.
func ErrCode(err error) Code {
	if sqlErr := ErrorFrom(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError normalizes a postgres server error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertSQLiteError normalizes a go-sqlite3 error. sqlite reports the
// offending table and column only inside the message, e.g.
// "UNIQUE constraint failed: users.email".
func ConvertSQLiteError(src sqlite3.Error) *Error {
	sqlErr := &Error{
		Code:         Other,
		Severity:     SeverityError,
		DatabaseCode: strconv.Itoa(int(src.ExtendedCode)),
		Message:      src.Error(),
		driverErr:    src,
	}

	switch src.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		sqlErr.Code = UniqueViolation
	case sqlite3.ErrConstraintForeignKey:
		sqlErr.Code = ForeignKeyViolation
	case sqlite3.ErrConstraintNotNull:
		sqlErr.Code = NotNullViolation
	case sqlite3.ErrConstraintCheck:
		sqlErr.Code = CheckViolation
	default:
		if src.Code == sqlite3.ErrBusy || src.Code == sqlite3.ErrLocked {
			sqlErr.Code = Busy
		}
	}

	if sqlErr.Code == UniqueViolation || sqlErr.Code == NotNullViolation {
		sqlErr.TableName, sqlErr.ColumnName = parseSQLiteTarget(sqlErr.Message)
	}

	return sqlErr
}

// parseSQLiteTarget extracts "table.column" from a constraint message.
// For composite keys only the first column is returned.
func parseSQLiteTarget(message string) (table, column string) {
	_, target, found := strings.Cut(message, "failed: ")
	if !found {
		return "", ""
	}

	first, _, _ := strings.Cut(target, ",")
	table, column, found = strings.Cut(strings.TrimSpace(first), ".")
	if !found {
		return "", ""
	}
	return table, column
}

// singular turns a table name into its entity name: users -> user,
// user_quizzes -> user_quiz. Names like progress stay unchanged.
func singular(name string) string {
	switch {
	case strings.HasSuffix(name, "zzes"):
		return name[:len(name)-3]
	case strings.HasSuffix(name, "ies"):
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(name, "ss"):
		return name
	case strings.HasSuffix(name, "s") && len(name) > 1:
		return name[:len(name)-1]
	}
	return name
}

// generateErrorCode builds <ENTITY>_<ACTION>, e.g. users + UniqueViolation
// gives USER_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	domain := "RECORD"
	if tableName != "" {
		domain = strings.ToUpper(singular(strings.ToLower(tableName)))
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by the column when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a foreign key column ("user_id" -> "User"), then
// the singular table name, then "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		return humanizeText(singular(tableName))
	}

	return "record"
}

// humanizeText turns "first_name" into "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation reads the column out of constraint names
// shaped like unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractColumnForForeignKey reads "user_id" out of "user_quizzes_user_id_fkey".
func extractColumnForForeignKey(constraintName string) string {
	if matches := foreignKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// tableHint returns the table recorded with WithTable, if any.
func tableHint(err error) string {
	var te *tableError
	if errors.As(err, &te) {
		return te.table
	}
	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - postgres and sqlite constraint errors: 400 with a generated code
//   - no rows: 404
//   - anything else: a generic 500 that does not leak details
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	table := tableHint(err)

	if sqlErr := ErrorFrom(err); sqlErr != nil {
		return toHTTPError(sqlErr, table)
	}

	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		if table != "" {
			code := strings.ToUpper(singular(table)) + "_NOT_FOUND"
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(table, "")), true, &code)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

func toHTTPError(sqlErr *Error, table string) error {
	if sqlErr.TableName == "" {
		sqlErr.TableName = table
	}

	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

	case UniqueViolation:
		columnName := sqlErr.ColumnName
		if columnName == "" {
			columnName = extractColumnForUniqueViolation(sqlErr.ConstraintName)
		}

		var fieldErrors []errs.FieldError
		if columnName != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			fieldErrors = []errs.FieldError{{Field: strings.ToLower(columnName), Error: "already exists"}}
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case CheckViolation:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	default:
		return errs.NewInternalServerError()
	}
}
