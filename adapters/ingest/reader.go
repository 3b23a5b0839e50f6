// Package ingest reads uploaded CSV and XLSX files into the domain table
// model, inferring a kind for every column and coercing date columns during
// load. Failures are load errors for that upload only; callers keep their
// previous state.
package ingest

import (
	"encoding/csv"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"datalens/domain/table"
	"datalens/internal/errors"
)

// Reader loads delimited text and spreadsheet files.
type Reader struct {
	maxRows int
}

// NewReader creates a Reader. maxRows caps the data rows read per upload;
// zero means no cap.
func NewReader(maxRows int) *Reader {
	return &Reader{maxRows: maxRows}
}

// Load dispatches on the file extension and builds a typed table. The first
// row is the header; at least one data row is required.
func (r *Reader) Load(filename string, src io.Reader) (*table.Table, error) {
	start := time.Now()

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = r.readCSV(src)
	case ".xlsx":
		rows, err = r.readXLSX(src)
	default:
		return nil, errors.UnsupportedFile(filename)
	}
	if err != nil {
		return nil, err
	}

	t, err := r.buildTable(rows)
	if err != nil {
		return nil, err
	}

	log.Printf("[Ingest] Loaded %s (%d columns, %d rows) in %.2fms",
		filename, t.ColumnCount(), t.RowCount(), float64(time.Since(start).Nanoseconds())/1e6)
	return t, nil
}

func (r *Reader) readCSV(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.LoadError("failed to parse CSV file"), err.Error())
	}
	return rows, nil
}

func (r *Reader) readXLSX(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(errors.LoadError("failed to open XLSX file"), err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.LoadError("XLSX file has no sheets")
	}

	// Always read the first sheet.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(errors.LoadError("failed to read sheet"), "sheet %s: %v", sheets[0], err)
	}
	return rows, nil
}

// buildTable turns raw string rows into typed columns. Header cells are
// trimmed; data rows shorter than the header are padded with nulls.
func (r *Reader) buildTable(rows [][]string) (*table.Table, error) {
	if len(rows) < 2 {
		return nil, errors.LoadError("file must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := rows[1:]
	if r.maxRows > 0 && len(data) > r.maxRows {
		log.Printf("[Ingest] Truncating upload to %d rows (had %d)", r.maxRows, len(data))
		data = data[:r.maxRows]
	}

	raw := make([][]string, len(headers))
	for col := range headers {
		raw[col] = make([]string, len(data))
		for row := range data {
			if col < len(data[row]) {
				raw[col][row] = strings.TrimSpace(data[row][col])
			}
		}
	}

	columns, err := inferColumns(headers, raw)
	if err != nil {
		return nil, err
	}

	t, err := table.New(columns)
	if err != nil {
		return nil, errors.Wrap(errors.LoadError("invalid table structure"), err.Error())
	}
	return t, nil
}
