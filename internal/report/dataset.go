package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Dataset is a rectangular parsed report: a header row of column labels and
// the data rows beneath it. Cells are kept as raw strings; typed access goes
// through a Schema.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// Fixed positions of the identity columns in every monthly report.
const (
	codeColumn     = 0
	salesmanColumn = 1
	totalColumn    = 2
)

// BrandColumn is one interior column of the report: its position and the
// brand code it is labeled with.
type BrandColumn struct {
	Index int
	Code  string
}

// Schema is the typed layout of a monthly report, derived and validated once
// per upload. The first three columns are customer code, salesman and running
// total, the last column is the brand count, and everything between is a
// brand column labeled with its brand code.
type Schema struct {
	Brands      []BrandColumn
	CountColumn int
}

// NewSchema derives the schema from the header row. A report needs at least
// the three identity columns, one brand column and the count column.
func NewSchema(columns []string) (*Schema, error) {
	if len(columns) < 5 {
		return nil, &ValidationError{Message: fmt.Sprintf("report has %d columns, expected at least 5", len(columns))}
	}
	s := &Schema{CountColumn: len(columns) - 1}
	for i := totalColumn + 1; i < s.CountColumn; i++ {
		code := strings.TrimSpace(columns[i])
		if code == "" {
			continue
		}
		s.Brands = append(s.Brands, BrandColumn{Index: i, Code: code})
	}
	return s, nil
}

// IsCustomerCode reports whether a trimmed cell value qualifies a row for
// processing: non-empty and composed entirely of digits. Header, footer and
// subtotal rows from spreadsheet exports fail this check and are skipped.
func IsCustomerCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cellAt returns the trimmed cell value at a column, reporting absence for
// short rows and blank cells.
func cellAt(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	if v == "" {
		return "", false
	}
	return v, true
}

// CustomerCode returns the raw customer-code cell of a row.
func (s *Schema) CustomerCode(row []string) string {
	v, _ := cellAt(row, codeColumn)
	return v
}

// Salesman returns the salesman cell of a row, if present.
func (s *Schema) Salesman(row []string) (string, bool) {
	return cellAt(row, salesmanColumn)
}

// Total returns the running-total cell of a row as a number. Cells that are
// absent or not numeric count as missing.
func (s *Schema) Total(row []string) (float64, bool) {
	v, ok := cellAt(row, totalColumn)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// BrandCount returns the trailing brand-count cell of a row as an integer.
func (s *Schema) BrandCount(row []string) (int, bool) {
	v, ok := cellAt(row, s.CountColumn)
	if !ok {
		return 0, false
	}
	// spreadsheet exports often render counts as "2.0"
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// Amount returns the monetary cell of a brand column for a row.
func (s *Schema) Amount(row []string, col BrandColumn) (float64, bool) {
	v, ok := cellAt(row, col.Index)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
