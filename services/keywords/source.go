package keywords

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"hakyeong/rocketcrawler/pkg/errors"
)

// brandSentinel marks input rows whose keyword should be crawled
const brandSentinel = "X"

// Columns holds the detected positions of the brand and keyword columns.
// A negative index means the column was not found.
type Columns struct {
	Brand   int
	Keyword int
}

// DetectColumns locates the brand and keyword columns in a header row.
// The brand column is the first header containing 브랜드. For the keyword
// column an exact 키워드 match wins over the first substring match.
func DetectColumns(header []string) Columns {
	cols := Columns{Brand: -1, Keyword: -1}
	for i, h := range header {
		norm := normalizeHeader(h)
		if cols.Brand < 0 && strings.Contains(norm, "브랜드") {
			cols.Brand = i
		}
		if norm == "키워드" {
			cols.Keyword = i
		} else if cols.Keyword < 0 && strings.Contains(norm, "키워드") {
			cols.Keyword = i
		}
	}
	return cols
}

func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\n", "")
	h = strings.ReplaceAll(h, "\r", "")
	return strings.TrimSpace(h)
}

// Load reads the keyword list from a CSV file. Only rows whose brand cell
// equals the sentinel marker qualify. limit <= 0 means no limit.
//
// A header missing either required column is fatal for the whole run: the
// downstream aggregation assumes a complete keyword set, so no partial
// list is acceptable.
func Load(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewInput("failed to open keyword file", err)
	}
	defer f.Close()

	return Read(f, limit)
}

// Read parses keyword rows from r; see Load
func Read(r io.Reader, limit int) ([]string, error) {
	reader := csv.NewReader(r)
	// Input cells may contain embedded newlines and ragged rows
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInput("failed to read header row", err)
	}

	cols := DetectColumns(header)
	if cols.Brand < 0 || cols.Keyword < 0 {
		return nil, errors.NewInput("브랜드 or 키워드 column not found in header", nil)
	}

	var result []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInput("failed to read keyword row", err)
		}
		if len(row) == 0 {
			continue
		}

		brand := cell(row, cols.Brand)
		keyword := cell(row, cols.Keyword)
		if brand != brandSentinel || keyword == "" {
			continue
		}

		result = append(result, keyword)
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
