package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleRecord() schedule.CourseRecord {
	start := time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC)
	return schedule.CourseRecord{
		Code:         "101",
		Level:        schedule.LevelBasic,
		Cycle:        intPtr(1),
		Modality:     schedule.ModalityRegular,
		Instructor:   "Ana Ruiz",
		Language:     schedule.LanguageEnglish,
		DetectedDays: []string{"LUNES", "MIÉRCOLES"},
		DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{
			schedule.Wednesday: {Start: schedule.Clock{Hour: 8}, End: schedule.Clock{Hour: 10}},
			schedule.Monday:    {Start: schedule.Clock{Hour: 8}, End: schedule.Clock{Hour: 10}},
		},
		StartDate: &start,
		Enrolled:  intPtr(15),
		Expected:  intPtr(20),
		Detail:    "aula 3",
	}
}

func TestTableRow(t *testing.T) {
	row := TableRow(sampleRecord())
	require.Len(t, row, len(schedule.Columns))

	assert.Equal(t, "101", row[0])
	assert.Equal(t, "1", row[2])
	assert.Equal(t, "INGLÉS", row[5])
	assert.Equal(t, "LUNES, MIÉRCOLES", row[6])
	assert.Equal(t, "LUNES: 08:00 - 10:00; MIÉRCOLES: 08:00 - 10:00", row[7])
	assert.Equal(t, "2025-07-07", row[8])
	assert.Equal(t, "", row[9])
	assert.Equal(t, "15", row[13])
	assert.Equal(t, "", row[15])
	assert.Equal(t, "aula 3", row[18])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []schedule.CourseRecord{sampleRecord()}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, schedule.Columns, rows[0])
	assert.Equal(t, "Ana Ruiz", rows[1][4])
}

func TestWriteTable_ReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "normalizado.xlsx")
	require.NoError(t, WriteTable(path, "Julio", []schedule.CourseRecord{sampleRecord()}))

	table, err := NewWorkbookReader(path, 1, logging.Nop()).ReadSheet(context.Background(), "Julio")
	require.NoError(t, err)

	assert.Equal(t, schedule.Columns, table.Headers)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "101", row["CODIGO"])
	assert.Equal(t, "1", row["Ciclo"])
	assert.Equal(t, "2025-07-07", row["F. Inicio"])
	assert.Equal(t, "", row["F. Fin"])
	assert.Equal(t, "20", row["N° Esperado"])
}
