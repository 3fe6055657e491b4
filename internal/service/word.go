package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/vocab/internal/errs"
	"github.com/deppfellow/vocab/internal/lib/importer"
	"github.com/deppfellow/vocab/internal/model/word"
	"github.com/deppfellow/vocab/internal/repository"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/deppfellow/vocab/internal/validation"
)

// WordService manages the append-only word catalog.
type WordService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewWordService(s *server.Server, repos *repository.Repositories) *WordService {
	return &WordService{server: s, repos: repos}
}

// Create stores a word. With catalog.unique_words set, a word whose text
// is already stored is rejected.
func (s *WordService) Create(ctx context.Context, payload *word.CreatePayload) (*word.Word, error) {
	if s.server.Config.Catalog.UniqueWords {
		taken, err := s.repos.Word.ExistsByText(ctx, payload.Word)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewDuplicateError(errs.CodeWordAlreadyExists, "word", "A word with this text already exists")
		}
	}

	return s.repos.Word.Create(ctx, payload.ToWord())
}

func (s *WordService) List(ctx context.Context) ([]word.Word, error) {
	return s.repos.Word.List(ctx)
}

// GetByID returns nil without an error when the word does not exist.
func (s *WordService) GetByID(ctx context.Context, id int64) (*word.Word, error) {
	return orNil(s.repos.Word.GetByID(ctx, id))
}

// RowIssue explains why an imported row was not stored.
type RowIssue struct {
	Line   int    `json:"line"`
	Word   string `json:"word"`
	Reason string `json:"reason"`
}

// ImportReport summarizes a bulk import.
type ImportReport struct {
	Created int        `json:"created"`
	Skipped []RowIssue `json:"skipped"`
	Failed  []RowIssue `json:"failed"`
}

// Import creates a word per row under the same rules as Create. Duplicates
// are skipped and invalid rows fail; neither stops the import. Only store
// or context errors abort it.
func (s *WordService) Import(ctx context.Context, rows []importer.Row) (*ImportReport, error) {
	report := &ImportReport{Skipped: []RowIssue{}, Failed: []RowIssue{}}
	logger := s.server.Logger.With().Str("operation", "import_words").Logger()

	for i := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		row := &rows[i]
		if err := validation.Check(&row.Payload); err != nil {
			report.Failed = append(report.Failed, RowIssue{Line: row.Line, Word: row.Payload.Word, Reason: describe(err)})
			continue
		}

		_, err := s.Create(ctx, &row.Payload)
		switch {
		case err == nil:
			report.Created++
		case errs.Code(err) == errs.CodeWordAlreadyExists:
			report.Skipped = append(report.Skipped, RowIssue{Line: row.Line, Word: row.Payload.Word, Reason: "already exists"})
		default:
			return report, fmt.Errorf("import line %d: %w", row.Line, err)
		}
	}

	logger.Info().
		Int("created", report.Created).
		Int("skipped", len(report.Skipped)).
		Int("failed", len(report.Failed)).
		Msg("word import finished")

	return report, nil
}

// describe flattens validation errors into one line.
func describe(err error) string {
	httpErr, ok := errs.As(err)
	if !ok || len(httpErr.Errors) == 0 {
		return err.Error()
	}

	reason := ""
	for i, fe := range httpErr.Errors {
		if i > 0 {
			reason += "; "
		}
		reason += fe.Field + " " + fe.Error
	}
	return reason
}
