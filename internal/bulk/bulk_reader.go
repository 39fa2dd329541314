package bulk

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	bulkerrors "go-payroll/internal/bulk/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// maxXLSRows bounds how much of a legacy workbook is read.
const maxXLSRows = 100000

// Table is an uploaded sheet keyed by normalized header.
type Table struct {
	Headers []string
	Rows    []Row
}

// Row is one data line. Line is 1-based and counts the header.
type Row struct {
	Line   int
	Values map[string]string
}

func (r Row) Get(column string) string {
	return r.Values[column]
}

// Any exposes the row to the loose payroll row parser.
func (r Row) Any() map[string]any {
	out := make(map[string]any, len(r.Values))
	for k, v := range r.Values {
		out[k] = v
	}
	return out
}

func (t Table) Has(column string) bool {
	for _, h := range t.Headers {
		if h == column {
			return true
		}
	}
	return false
}

// Require reports the required columns the table lacks.
func (t Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return bulkerrors.ErrMissingColumns.WithDetails(map[string]any{"columns": missing})
	}
	return nil
}

// ReadTable parses a CSV, XLSX or XLS upload. The format follows the file
// extension; only the first worksheet of a workbook is read.
func ReadTable(r io.Reader, filename string) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, bulkerrors.ErrUnreadableFile.WithCause(err)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		rows, err = readCSV(data)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(data)
	case ".xls":
		rows, err = readXLS(data)
	default:
		return Table{}, bulkerrors.ErrUnsupportedFormat
	}
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return Table{}, err
		}
		return Table{}, bulkerrors.ErrUnreadableFile.WithCause(err)
	}
	return buildTable(rows)
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, bulkerrors.ErrEmptyFile
	}
	// raw values keep date cells as serials instead of a locale format
	return file.GetRows(sheetName, excelize.Options{RawCellValue: true})
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, bulkerrors.ErrEmptyFile
	}
	return workbook.ReadAllCells(maxXLSRows), nil
}

func buildTable(rows [][]string) (Table, error) {
	if len(rows) == 0 {
		return Table{}, bulkerrors.ErrEmptyFile
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h)
	}
	if blankLine(headers) {
		return Table{}, bulkerrors.ErrEmptyFile
	}

	table := Table{Headers: headers}
	for i, raw := range rows[1:] {
		if blankLine(raw) {
			continue
		}
		values := make(map[string]string, len(headers))
		for col, h := range headers {
			if h == "" {
				continue
			}
			values[h] = cellValue(raw, col)
		}
		table.Rows = append(table.Rows, Row{Line: i + 2, Values: values})
	}
	return table, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF")))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankLine(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// spreadsheetDate turns an Excel date serial into YYYY-MM-DD and leaves any
// other text alone.
func spreadsheetDate(v string) string {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil || serial < 1 || serial > 2958465 {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Format("2006-01-02")
}
