package service

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/google/uuid"
)

// RowError reports a single rejected input row. Row 0 means the error
// applies to the file or batch as a whole.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult is the outcome of one CSV import invocation. Errors keep
// the order in which the offending rows were encountered; BatchID ties the
// result to the request logs.
type ImportResult struct {
	BatchID uuid.UUID  `json:"batch_id"`
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}

func newImportResult() *ImportResult {
	return &ImportResult{
		BatchID: uuid.New(),
		Errors:  make([]RowError, 0),
	}
}

func (r *ImportResult) addError(row int, msg string) {
	r.Errors = append(r.Errors, RowError{Row: row, Error: msg})
}

func readCSV(contents []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(contents))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// headerIndex maps lower-cased, trimmed column names to their position.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return idx
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
