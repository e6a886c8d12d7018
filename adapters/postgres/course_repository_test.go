package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/errors"
	"cargahoraria/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleCourses() []schedule.CourseRecord {
	start := time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC)
	return []schedule.CourseRecord{
		{
			Code:         "101",
			Level:        schedule.LevelBasic,
			Cycle:        intPtr(1),
			Modality:     schedule.ModalityRegular,
			Instructor:   "Ana Ruiz",
			Language:     schedule.LanguageEnglish,
			DetectedDays: []string{"LUNES", "MIÉRCOLES"},
			DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{
				schedule.Monday:    {Start: schedule.Clock{Hour: 8}, End: schedule.Clock{Hour: 10}},
				schedule.Wednesday: {Start: schedule.Clock{Hour: 8}, End: schedule.Clock{Hour: 10}},
			},
			StartDate: &start,
			Enrolled:  intPtr(15),
			Expected:  intPtr(20),
		},
		{
			Code:     "103",
			Modality: schedule.ModalityReview,
			Language: schedule.LanguageEnglish,
		},
	}
}

func TestRowMapping(t *testing.T) {
	for i, rec := range sampleCourses() {
		row, err := toRow(i, rec)
		require.NoError(t, err)
		assert.Equal(t, i, row.Position)

		back, err := fromRow(row)
		require.NoError(t, err)
		assert.Equal(t, rec.Code, back.Code)
		assert.Equal(t, rec.Cycle, back.Cycle)
		assert.Equal(t, rec.StartDate, back.StartDate)
		assert.Equal(t, len(rec.DetailedSchedule), len(back.DetailedSchedule))
		assert.NotNil(t, back.DetectedDays)
	}

	row, err := toRow(0, sampleCourses()[1])
	require.NoError(t, err)
	assert.Equal(t, "[]", row.DetectedDays)
	assert.Equal(t, "{}", row.DetailedSchedule)
}

func TestUTCDate(t *testing.T) {
	lima := time.FixedZone("PET", -5*3600)
	d := time.Date(2025, time.July, 7, 0, 0, 0, 0, lima)
	got := utcDate(&d)
	assert.Equal(t, time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC), *got)
	assert.Nil(t, utcDate(nil))
}

// TestCourseRepository_Postgres runs against a real database when
// CARGA_TEST_DATABASE_URL is set.
func TestCourseRepository_Postgres(t *testing.T) {
	url := os.Getenv("CARGA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CARGA_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migration.NewRunner().Run(ctx, db))

	repo := NewCourseRepository(db)
	workbook := "test-" + t.Name() + ".xlsx"
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM course_runs WHERE workbook = $1`, workbook)
	})

	first := &schedule.Run{Workbook: workbook, Sheet: "Julio"}
	require.NoError(t, repo.SaveRun(ctx, first, sampleCourses()))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 2, first.CourseCount)

	second := &schedule.Run{Workbook: workbook, Sheet: "Julio"}
	require.NoError(t, repo.SaveRun(ctx, second, sampleCourses()[:1]))

	latest, err := repo.LatestRun(ctx, workbook, "Julio")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 1, latest.CourseCount)

	courses, err := repo.ListCourses(ctx, latest.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "101", courses[0].Code)
	assert.Equal(t, []string{"LUNES", "MIÉRCOLES"}, courses[0].DetectedDays)
	assert.Equal(t, "08:00 - 10:00", courses[0].DetailedSchedule[schedule.Wednesday].String())
	assert.Equal(t, time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC), *courses[0].StartDate)

	old, err := repo.ListCourses(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, old)

	_, err = repo.LatestRun(ctx, workbook, "Agosto")
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
}
