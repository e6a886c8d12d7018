package normalize

import (
	"testing"

	"cargahoraria/adapters/coercer"
	"cargahoraria/domain/schedule"

	"github.com/stretchr/testify/assert"
)

func TestExtractLevelCycle(t *testing.T) {
	cases := []struct {
		raw  string
		want LevelCycle
	}{
		{"B1", LevelCycle{Level: schedule.LevelBasic, Cycle: "1"}},
		{"i12", LevelCycle{Level: schedule.LevelIntermediate, Cycle: "12"}},
		{"A3 PORTUGUÉS", LevelCycle{Level: schedule.LevelAdvanced, Cycle: "3"}},
		{"Repaso B2", LevelCycle{Override: schedule.ModalityReview}},
		{"REPASO", LevelCycle{Override: schedule.ModalityReview}},
		{"X1", LevelCycle{}},
		{"B", LevelCycle{}},
		{" 1B", LevelCycle{}},
		{"", LevelCycle{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractLevelCycle(tc.raw), tc.raw)
	}
}

func TestExtractDays(t *testing.T) {
	assert.Equal(t, []string{"LUNES", "MIÉRCOLES"}, ExtractDays("LUNES Y MIERCOLES"))
	assert.Equal(t, []string{"LUNES", "MIÉRCOLES", "VIERNES"}, ExtractDays("Lunes, Miércoles y Viernes"))
	assert.Equal(t, []string{"SÁBADOS"}, ExtractDays("SÁBADOS, feriado"))
	assert.Equal(t, []string{}, ExtractDays(""))
	assert.Equal(t, []string{}, ExtractDays("por definir"))
}

func TestSplitEnrollment(t *testing.T) {
	c := coercer.NewCellCoercer(coercer.DefaultCoercionConfig())

	enrolled, expected := SplitEnrollment(c, "15/20")
	assert.Equal(t, 15, *enrolled)
	assert.Equal(t, 20, *expected)

	enrolled, expected = SplitEnrollment(c, " 12 / 18 ")
	assert.Equal(t, 12, *enrolled)
	assert.Equal(t, 18, *expected)

	enrolled, expected = SplitEnrollment(c, "15")
	assert.Equal(t, 15, *enrolled)
	assert.Nil(t, expected)

	for _, raw := range []string{"15/x", "abc", "", "1/2/3", "15.5"} {
		enrolled, expected = SplitEnrollment(c, raw)
		assert.Nil(t, enrolled, raw)
		assert.Nil(t, expected, raw)
	}
}

func TestMapSchedule_SingleBlockAppliesToAllDays(t *testing.T) {
	got := MapSchedule([]string{"LUNES", "MIÉRCOLES"}, "08:00 - 10:00")

	slot := schedule.TimeSlot{Start: schedule.Clock{Hour: 8}, End: schedule.Clock{Hour: 10}}
	assert.Equal(t, map[schedule.Weekday]schedule.TimeSlot{
		schedule.Monday:    slot,
		schedule.Wednesday: slot,
	}, got)
}

func TestMapSchedule_TwoBlocksWithThreeDays(t *testing.T) {
	got := MapSchedule([]string{"LUNES", "MARTES", "MIÉRCOLES"}, "08:00 - 10:00, 14:00 - 16:00")

	morning := schedule.TimeSlot{Start: schedule.Clock{Hour: 8}, End: schedule.Clock{Hour: 10}}
	afternoon := schedule.TimeSlot{Start: schedule.Clock{Hour: 14}, End: schedule.Clock{Hour: 16}}
	assert.Equal(t, map[schedule.Weekday]schedule.TimeSlot{
		schedule.Monday:    morning,
		schedule.Tuesday:   afternoon,
		schedule.Wednesday: afternoon,
	}, got)
}

func TestMapSchedule_TwoBlocksNeedThreeDays(t *testing.T) {
	got := MapSchedule([]string{"LUNES", "MIÉRCOLES"}, "08:00 - 10:00, 14:00 - 16:00")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestMapSchedule_Degrades(t *testing.T) {
	days := []string{"LUNES", "MARTES", "MIÉRCOLES"}
	cases := map[string]string{
		"three blocks":      "08:00 - 09:00, 10:00 - 11:00, 12:00 - 13:00",
		"bad clock":         "8am - 10am",
		"missing separator": "08:00-10:00",
		"hour out of range": "25:00 - 26:00",
		"blank":             "  ",
		"one bad block":     "08:00 - 10:00, 14:00 - x",
	}
	for name, hours := range cases {
		assert.Empty(t, MapSchedule(days, hours), name)
	}
	assert.Empty(t, MapSchedule(nil, "08:00 - 10:00"))
}
