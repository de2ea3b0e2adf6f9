package report

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an uploaded Excel workbook into a
// Dataset. headerRow is the zero-based index of the row holding the column
// labels; everything above it (report titles, export banners) is discarded.
func ParseXLSX(r io.Reader, headerRow int) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ValidationError{Message: "file is not a readable xlsx workbook"}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ValidationError{Message: "workbook contains no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return fromRows(rows, headerRow)
}

// ParseCSV reads a CSV export of the same report layout into a Dataset.
func ParseCSV(r io.Reader, headerRow int) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &ValidationError{Message: "file is not readable csv: " + err.Error()}
	}
	return fromRows(rows, headerRow)
}

func fromRows(rows [][]string, headerRow int) (*Dataset, error) {
	if headerRow < 0 || headerRow >= len(rows) {
		return nil, &ValidationError{Message: "report has no header row"}
	}
	return &Dataset{
		Columns: rows[headerRow],
		Rows:    rows[headerRow+1:],
	}, nil
}
