package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleGenerator_Deterministic(t *testing.T) {
	config := DefaultScheduleConfig()
	config.CoursesPerLanguage = 3

	a := NewScheduleGenerator(config).Generate()
	b := NewScheduleGenerator(config).Generate()
	assert.Equal(t, a, b)
}

func TestScheduleGenerator_Shape(t *testing.T) {
	config := DefaultScheduleConfig()
	config.CoursesPerLanguage = 4

	sheet := NewScheduleGenerator(config).Generate()
	assert.Equal(t, "Agosto", sheet.Name)
	assert.Equal(t, ScheduleHeaders, sheet.Headers)

	// 4 sections of courses, 3 section header rows, a blank row and the sentinel
	require.Len(t, sheet.Rows, 4*4+3+2)
	assert.Equal(t, "101", sheet.Rows[0][0])
	assert.Equal(t, "PORTUGUÉS", sheet.Rows[4][0])
	assert.Equal(t, "MATRÍCULA AGOSTO", sheet.Rows[len(sheet.Rows)-1][0])
}

func TestWriteEnrollment_FileName(t *testing.T) {
	path := WriteEnrollment(t, t.TempDir(), "0101", Student{Code: "0101", Name: "Rosa"})
	assert.FileExists(t, path)
	assert.Contains(t, path, "Inscritos_0101.xlsx")
}
