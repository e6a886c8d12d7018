package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/errors"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// DefaultHeaderRow is the sheet row holding column names in schedule
// workbooks; the first row carries a title.
const DefaultHeaderRow = 2

// WorkbookReader reads schedule sheets from Excel or CSV files
type WorkbookReader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	headerRow int    // 1-based
	logger    zerolog.Logger
}

// NewWorkbookReader creates a reader for an .xlsx workbook or a .csv export.
// headerRow is 1-based; values below 1 fall back to DefaultHeaderRow.
func NewWorkbookReader(filePath string, headerRow int, logger zerolog.Logger) *WorkbookReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if headerRow < 1 {
		headerRow = DefaultHeaderRow
	}
	return &WorkbookReader{
		filePath:  filePath,
		fileType:  fileType,
		headerRow: headerRow,
		logger:    logger.With().Str("workbook", filepath.Base(filePath)).Logger(),
	}
}

// Path returns the workbook path
func (r *WorkbookReader) Path() string {
	return r.filePath
}

// Sheets lists sheet names in workbook order. A CSV file has a single sheet
// named after the file.
func (r *WorkbookReader) Sheets(ctx context.Context) ([]string, error) {
	if err := r.checkFile(); err != nil {
		return nil, err
	}
	if r.fileType == "csv" {
		return []string{r.csvSheetName()}, nil
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WorkbookUnreadable(r.filePath, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ReadSheet reads one sheet into a raw table
func (r *WorkbookReader) ReadSheet(ctx context.Context, sheet string) (*schedule.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.checkFile(); err != nil {
		return nil, err
	}

	switch r.fileType {
	case "csv":
		if sheet != "" && sheet != r.csvSheetName() {
			return nil, errors.SheetNotFound(sheet)
		}
		return r.readCSVData()
	default:
		return r.readExcelData(sheet)
	}
}

func (r *WorkbookReader) checkFile() error {
	info, err := os.Stat(r.filePath)
	if err != nil {
		return errors.WorkbookUnreadable(r.filePath, err)
	}
	if info.IsDir() {
		return errors.WorkbookUnreadable(r.filePath, fmt.Errorf("is a directory"))
	}
	return nil
}

func (r *WorkbookReader) csvSheetName() string {
	return strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
}

// readExcelData reads formatted and raw cell values; the raw values are used
// to recover dates from date-formatted numeric cells.
func (r *WorkbookReader) readExcelData(sheet string) (*schedule.RawTable, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WorkbookUnreadable(r.filePath, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.SheetNotFound(sheet)
	}

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WorkbookUnreadable(r.filePath, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WorkbookUnreadable(r.filePath, err)
	}

	table := r.processRows(sheet, formatted, raw)
	r.logger.Debug().
		Str("sheet", sheet).
		Int("columns", len(table.Headers)).
		Int("rows", len(table.Rows)).
		Dur("elapsed", time.Since(startTime)).
		Msg("sheet read")
	return table, nil
}

func (r *WorkbookReader) readCSVData() (*schedule.RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.WorkbookUnreadable(r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WorkbookUnreadable(r.filePath, err)
	}

	table := r.processRows(r.csvSheetName(), rows, nil)
	r.logger.Debug().Int("rows", len(table.Rows)).Msg("csv read")
	return table, nil
}

// processRows turns rows of cell text into a RawTable. Rows above the header
// row are skipped. Blank headers are named "Unnamed: N" and repeated headers
// get a ".N" suffix so every column keeps its own key.
func (r *WorkbookReader) processRows(sheet string, rows, raw [][]string) *schedule.RawTable {
	table := &schedule.RawTable{Sheet: sheet}
	headerIdx := r.headerRow - 1
	if len(rows) <= headerIdx {
		return table
	}

	seen := map[string]int{}
	for i, header := range rows[headerIdx] {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		table.Headers = append(table.Headers, name)
	}

	dateCols := map[int]bool{}
	for i, h := range table.Headers {
		for _, dc := range schedule.DateColumns {
			if schedule.Fold(h) == schedule.Fold(dc) {
				dateCols[i] = true
			}
		}
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		row := make(schedule.RawRow, len(rows[i]))
		for j, value := range rows[i] {
			if j >= len(table.Headers) {
				break
			}
			value = strings.TrimSpace(value)
			if dateCols[j] {
				value = dateCell(value, rawCell(raw, i, j))
			}
			row[table.Headers[j]] = value
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func rawCell(raw [][]string, i, j int) string {
	if i >= len(raw) || j >= len(raw[i]) {
		return ""
	}
	return strings.TrimSpace(raw[i][j])
}

// dateCell converts a date-formatted serial number to YYYY-MM-DD. A cell
// whose formatted text equals its raw value carries no date format and is
// returned unchanged.
func dateCell(formatted, raw string) string {
	if raw == "" || raw == formatted {
		return formatted
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return formatted
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return formatted
	}
	return t.Format(schedule.DateLayout)
}
