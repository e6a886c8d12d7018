package testkit

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ScheduleHeaders is the column order of the monthly schedule sheets.
var ScheduleHeaders = []string{
	"CODIGO", "CICLO", "MODALIDAD", "DOCENTE", "DIAS", "HORAS", "Nª inscritos",
	"F. Inicio", "F. Fin", "Parcial", "Final", "Subida de notas",
}

// EnrollmentHeaders is the header row of an Inscritos_<code>.xlsx file.
var EnrollmentHeaders = []string{"CODIGO_CURSO", "NOMBRES", "CORREO", "CELULAR"}

// Sheet is one worksheet to write: a title row, a header row, then Rows.
// time.Time cells are written as date serials.
type Sheet struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]any
}

// Student is one row of an enrollment workbook
type Student struct {
	Code  string
	Name  string
	Email string
	Phone string
}

// Date is a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// JulySheet is a small sheet shaped like the real ones: language section
// headers, a repeated header row, a blank instructor cell, a review course
// and the enrollment summary block at the bottom.
func JulySheet() Sheet {
	start, end := Date(2025, time.July, 7), Date(2025, time.July, 30)
	return Sheet{
		Name:    "Julio",
		Title:   "CARGA HORARIA JULIO 2025",
		Headers: ScheduleHeaders,
		Rows: [][]any{
			{"INGLÉS"},
			{"101", "B1", "regular", "Ana Ruiz", "LUNES, MIERCOLES Y VIERNES", "08:00 - 10:00", "15/20", start, end, Date(2025, time.July, 18), Date(2025, time.July, 29), Date(2025, time.July, 31)},
			{"102", "I3", "intensivo", "", "MARTES Y JUEVES", "18:00 - 20:30", "12", start, end},
			{"103", "REPASO", "superintensivo", "Luis Soto", "SÁBADOS", "09:00 - 13:00", "", start, end},
			{"PORTUGUÉS"},
			{"CODIGO", "CICLO", "MODALIDAD", "DOCENTE"},
			{"201", "B2", "regular", "João Lima", "LUNES, MIÉRCOLES, VIERNES", "08:00 - 10:00, 10:30 - 12:00", "8/10", start, end},
			{"ITALIANO"},
			{"301", "A1", "super intensivo", "Carla Neri", "LUNES A VIERNES", "19:00 - 21:00", "sin datos", "por definir", end},
			{},
			{"MATRÍCULA JULIO"},
			{"Total", "", "", "", "", "", "35"},
		},
	}
}

// WriteWorkbook writes sheets to dir/name and returns the path
func WriteWorkbook(t testing.TB, dir, name string, sheets ...Sheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.Name))
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetCellValue(s.Name, "A1", s.Title))
		writeRow(t, f, s.Name, 2, toAny(s.Headers))
		for r, row := range s.Rows {
			writeRow(t, f, s.Name, r+3, row)
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteRosterTemplate writes a roster template with headers in row 1 and the
// course block headers in G1:I1.
func WriteRosterTemplate(t testing.TB, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Lista"))
	writeRow(t, f, "Lista", 1, []any{"N°", "CODIGO", "NOMBRES", "CORREO", "CELULAR", "", "CURSO", "INICIO", "FIN"})

	path := filepath.Join(dir, "plantilla.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteEnrollment writes dir/Inscritos_<code>.xlsx with the given students
func WriteEnrollment(t testing.TB, dir, code string, students ...Student) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	writeRow(t, f, "Sheet1", 1, toAny(EnrollmentHeaders))
	for i, s := range students {
		writeRow(t, f, "Sheet1", i+2, []any{s.Code, s.Name, s.Email, s.Phone})
	}

	path := filepath.Join(dir, fmt.Sprintf("Inscritos_%s.xlsx", code))
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeRow(t testing.TB, f *excelize.File, sheet string, row int, values []any) {
	t.Helper()
	for col, v := range values {
		if v == nil || v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
