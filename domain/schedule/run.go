package schedule

import "time"

// Run is one normalization pass over a workbook sheet
type Run struct {
	ID          string    `json:"id" db:"id"`
	Workbook    string    `json:"workbook" db:"workbook"`
	Sheet       string    `json:"sheet" db:"sheet"`
	CourseCount int       `json:"course_count" db:"course_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
