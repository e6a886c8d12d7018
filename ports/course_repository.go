package ports

import (
	"context"

	"cargahoraria/domain/schedule"
)

// CourseRepository persists normalization runs and their course records
type CourseRepository interface {
	// SaveRun stores a run, replacing any earlier run of the same workbook and sheet
	SaveRun(ctx context.Context, run *schedule.Run, records []schedule.CourseRecord) error

	// LatestRun returns the most recent run of a workbook sheet
	LatestRun(ctx context.Context, workbook, sheet string) (*schedule.Run, error)

	// ListCourses returns the records of a run in source order
	ListCourses(ctx context.Context, runID string) ([]schedule.CourseRecord, error)
}
