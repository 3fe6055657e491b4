// Package importer reads word catalog entries from spreadsheets (.xlsx)
// and CSV files.
//
// The first row is a header naming the columns; names match the JSON
// field names of a word (word, definition, part_of_speech, ...) in any
// case. Unknown columns are ignored. List columns (synonyms,
// common_collocations, tags) hold values separated by ListSeparator.
package importer

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deppfellow/vocab/internal/model"
	"github.com/deppfellow/vocab/internal/model/word"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ListSeparator splits list cells.
const ListSeparator = ";"

// DefaultSheet is read from workbooks when no sheet is named.
const DefaultSheet = "Sheet1"

var ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")

// Row is one data row with its 1-based line number in the source.
type Row struct {
	Line    int
	Payload word.CreatePayload
}

type Options struct {
	// Sheet selects the workbook sheet. Ignored for CSV.
	Sheet string
}

// ReadFile picks the reader by file extension.
func ReadFile(path string, opts Options) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, opts.Sheet)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ReadCSV reads comma-separated records. Rows may have fewer fields than
// the header.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	return parseRecords(records)
}

// ReadXLSX reads the named sheet, DefaultSheet when empty.
func ReadXLSX(r io.Reader, sheet string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheet = DefaultSheet
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return parseRecords(records)
}

func parseRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"word", "definition"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.Errorf("missing required column %q", required)
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}

		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		rows = append(rows, Row{
			Line: i + 2,
			Payload: word.CreatePayload{
				Word:               cell("word"),
				Definition:         cell("definition"),
				PhoneticSpelling:   optional(cell("phonetic_spelling")),
				AudioURL:           optional(cell("audio_url")),
				ImageURL:           optional(cell("image_url")),
				PartOfSpeech:       optional(cell("part_of_speech")),
				Synonyms:           list(cell("synonyms")),
				CommonCollocations: list(cell("common_collocations")),
				UsageContext:       optional(cell("usage_context")),
				Example:            optional(cell("example")),
				Category:           optional(cell("category")),
				Tags:               list(cell("tags")),
				Difficulty:         optional(cell("difficulty")),
			},
		})
	}

	return rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func list(v string) model.StringList {
	if v == "" {
		return nil
	}

	var out model.StringList
	for _, item := range strings.Split(v, ListSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
