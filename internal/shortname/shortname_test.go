package shortname

import (
	"testing"

	"cargahoraria/domain/schedule"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func slot(h1, m1, h2, m2 int) schedule.TimeSlot {
	return schedule.TimeSlot{
		Start: schedule.Clock{Hour: h1, Minute: m1},
		End:   schedule.Clock{Hour: h2, Minute: m2},
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		rec  schedule.CourseRecord
		want string
	}{
		{
			name: "regular english course",
			rec: schedule.CourseRecord{
				Instructor: "Ana Ruiz",
				Language:   schedule.LanguageEnglish,
				Modality:   schedule.ModalityRegular,
				Level:      schedule.LevelBasic,
				Cycle:      intPtr(1),
				DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{
					schedule.Monday:    slot(8, 0, 10, 0),
					schedule.Wednesday: slot(8, 0, 10, 0),
				},
			},
			want: "Ana Ruiz-ING REG01(B)-LX-08-00-10-00",
		},
		{
			name: "two distinct slots",
			rec: schedule.CourseRecord{
				Instructor: "João Lima",
				Language:   schedule.LanguagePortuguese,
				Modality:   schedule.ModalityIntensive,
				Level:      schedule.LevelIntermediate,
				Cycle:      intPtr(12),
				DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{
					schedule.Monday:    slot(8, 0, 10, 0),
					schedule.Wednesday: slot(10, 30, 12, 0),
					schedule.Friday:    slot(10, 30, 12, 0),
				},
			},
			want: "João Lima-PORT INT12(I)-LVX-08-00-10-00-10-30-12-00",
		},
		{
			name: "review course without cycle or schedule",
			rec: schedule.CourseRecord{
				Instructor:       "Luis Soto",
				Language:         schedule.LanguageQuechua,
				Modality:         schedule.ModalityReview,
				DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{},
			},
			want: "Luis Soto-QUE REP00(NA)--",
		},
		{
			name: "unknown language and modality",
			rec: schedule.CourseRecord{
				Instructor: "Mei",
				Language:   schedule.Language("Chino"),
				Modality:   schedule.Modality("online"),
				Level:      schedule.LevelAdvanced,
				Cycle:      intPtr(3),
				DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{
					schedule.Saturday: slot(9, 0, 13, 0),
				},
			},
			want: "Mei-CHI X03(A)-S-09-00-13-00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.rec))
		})
	}
}

func TestLabel_DependsOnlyOnRecord(t *testing.T) {
	rec := schedule.CourseRecord{
		Instructor: "Ana Ruiz",
		Language:   schedule.LanguageItalian,
		Modality:   schedule.ModalitySuperIntensive,
		Level:      schedule.LevelBasic,
		Cycle:      intPtr(2),
		DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{
			schedule.Tuesday:  slot(18, 0, 20, 30),
			schedule.Thursday: slot(18, 0, 20, 30),
		},
	}
	first := Label(rec)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Label(rec))
	}

	other := rec
	other.Instructor = "Luis Soto"
	assert.NotEqual(t, first, Label(other))
	assert.Equal(t, first[len(rec.Instructor):], Label(other)[len(other.Instructor):])
}

func TestFileName_ReplacesSlashes(t *testing.T) {
	rec := schedule.CourseRecord{
		Instructor:       "Ana/Luis",
		Language:         schedule.LanguageEnglish,
		Modality:         schedule.ModalityRegular,
		DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{},
	}
	assert.Equal(t, "Ana-Luis-ING REG00(NA)--.xlsx", FileName(rec))
}
