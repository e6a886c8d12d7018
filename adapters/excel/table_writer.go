package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cargahoraria/domain/schedule"

	"github.com/xuri/excelize/v2"
)

// firstDateCol is the zero-based index of F. Inicio in schedule.Columns.
const firstDateCol = 8

// TableRow renders a record as the 19 text cells of the normalized table,
// in schedule.Columns order. Absent values are empty strings.
func TableRow(rec schedule.CourseRecord) []string {
	return []string{
		rec.Code,
		string(rec.Level),
		intText(rec.Cycle),
		string(rec.Modality),
		rec.Instructor,
		rec.Language.Label(),
		strings.Join(rec.DetectedDays, ", "),
		schedule.FormatSchedule(rec.DetailedSchedule),
		schedule.FormatDate(rec.StartDate),
		schedule.FormatDate(rec.EndDate),
		schedule.FormatDate(rec.MidtermDate),
		schedule.FormatDate(rec.FinalDate),
		schedule.FormatDate(rec.GradeUploadDate),
		intText(rec.Enrolled),
		intText(rec.Expected),
		intText(rec.Passed),
		intText(rec.Failed),
		intText(rec.NoShow),
		rec.Detail,
	}
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// WriteCSV writes the normalized table with a header row
func WriteCSV(w io.Writer, records []schedule.CourseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(schedule.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(TableRow(rec)); err != nil {
			return fmt.Errorf("failed to write course %s: %w", rec.Code, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable saves the normalized table to a new workbook at path. Dates are
// written as date cells and counts as numbers so the sheet sorts and filters
// correctly.
func WriteTable(path, sheet string, records []schedule.CourseRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(schedule.Columns))
	for i, name := range schedule.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(schedule.Columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, rec := range records {
		row := i + 2
		for col, value := range tableValues(rec) {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}
			if col >= firstDateCol && col < firstDateCol+len(schedule.DateColumns) {
				if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
					return fmt.Errorf("failed to style %s: %w", cell, err)
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save table %s: %w", path, err)
	}
	return nil
}

// tableValues returns typed cell values; nil marks an empty cell.
func tableValues(rec schedule.CourseRecord) []interface{} {
	text := TableRow(rec)
	values := make([]interface{}, len(text))
	for i, s := range text {
		if s != "" {
			values[i] = s
		}
	}

	ints := map[int]*int{2: rec.Cycle, 13: rec.Enrolled, 14: rec.Expected, 15: rec.Passed, 16: rec.Failed, 17: rec.NoShow}
	for i, v := range ints {
		if v != nil {
			values[i] = *v
		}
	}
	dates := []*time.Time{rec.StartDate, rec.EndDate, rec.MidtermDate, rec.FinalDate, rec.GradeUploadDate}
	for i, d := range dates {
		if d != nil {
			values[firstDateCol+i] = *d
		}
	}
	return values
}
