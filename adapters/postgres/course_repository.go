package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/errors"
	"cargahoraria/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// courseRepository implements the CourseRepository interface
type courseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sqlx.DB) ports.CourseRepository {
	return &courseRepository{db: db}
}

// courseRow is the course_records row layout. JSONB columns travel as text;
// lib/pq would send []byte as bytea.
type courseRow struct {
	Position         int        `db:"position"`
	Code             string     `db:"code"`
	Level            string     `db:"level"`
	Cycle            *int       `db:"cycle"`
	Modality         string     `db:"modality"`
	Instructor       string     `db:"instructor"`
	Language         string     `db:"language"`
	DetectedDays     string     `db:"detected_days"`
	DetailedSchedule string     `db:"detailed_schedule"`
	StartDate        *time.Time `db:"start_date"`
	EndDate          *time.Time `db:"end_date"`
	MidtermDate      *time.Time `db:"midterm_date"`
	FinalDate        *time.Time `db:"final_date"`
	GradeUploadDate  *time.Time `db:"grade_upload_date"`
	Enrolled         *int       `db:"enrolled"`
	Expected         *int       `db:"expected"`
	Passed           *int       `db:"passed"`
	Failed           *int       `db:"failed"`
	NoShow           *int       `db:"no_show"`
	Detail           string     `db:"detail"`
}

// SaveRun stores a run and its records, replacing any earlier run of the
// same workbook and sheet. The run gets a new id when it has none.
func (r *courseRepository) SaveRun(ctx context.Context, run *schedule.Run, records []schedule.CourseRecord) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.CourseCount = len(records)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM course_runs WHERE workbook = $1 AND sheet = $2`,
		run.Workbook, run.Sheet,
	); err != nil {
		return errors.DatabaseError("failed to replace previous run", err)
	}

	if _, err := tx.NamedExecContext(ctx,
		`INSERT INTO course_runs (id, workbook, sheet, course_count, created_at)
		VALUES (:id, :workbook, :sheet, :course_count, :created_at)`,
		run,
	); err != nil {
		return errors.DatabaseError("failed to create run", err)
	}

	query := `INSERT INTO course_records (
		run_id, position, code, level, cycle, modality, instructor, language,
		detected_days, detailed_schedule, start_date, end_date, midterm_date, final_date,
		grade_upload_date, enrolled, expected, passed, failed, no_show, detail
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
	)`
	for i, rec := range records {
		row, err := toRow(i, rec)
		if err != nil {
			return errors.DatabaseError("failed to encode course "+rec.Code, err)
		}
		if _, err := tx.ExecContext(ctx, query,
			run.ID, row.Position, row.Code, row.Level, row.Cycle, row.Modality, row.Instructor, row.Language,
			row.DetectedDays, row.DetailedSchedule, row.StartDate, row.EndDate, row.MidtermDate, row.FinalDate,
			row.GradeUploadDate, row.Enrolled, row.Expected, row.Passed, row.Failed, row.NoShow, row.Detail,
		); err != nil {
			return errors.DatabaseError("failed to insert course "+rec.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit run", err)
	}
	return nil
}

// LatestRun returns the stored run of a workbook sheet
func (r *courseRepository) LatestRun(ctx context.Context, workbook, sheet string) (*schedule.Run, error) {
	var run schedule.Run
	err := r.db.GetContext(ctx, &run,
		`SELECT id, workbook, sheet, course_count, created_at
		FROM course_runs WHERE workbook = $1 AND sheet = $2
		ORDER BY created_at DESC LIMIT 1`,
		workbook, sheet,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound(fmt.Sprintf("run for %s/%s", workbook, sheet))
		}
		return nil, errors.DatabaseError("failed to get run", err)
	}
	return &run, nil
}

// ListCourses returns the records of a run in source order
func (r *courseRepository) ListCourses(ctx context.Context, runID string) ([]schedule.CourseRecord, error) {
	var rows []courseRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT position, code, level, cycle, modality, instructor, language,
			detected_days, detailed_schedule, start_date, end_date, midterm_date, final_date,
			grade_upload_date, enrolled, expected, passed, failed, no_show, detail
		FROM course_records WHERE run_id = $1 ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, errors.DatabaseError("failed to list courses", err)
	}

	records := make([]schedule.CourseRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			return nil, errors.DatabaseError("failed to decode course "+row.Code, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func toRow(position int, rec schedule.CourseRecord) (courseRow, error) {
	days := rec.DetectedDays
	if days == nil {
		days = []string{}
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return courseRow{}, fmt.Errorf("failed to marshal detected days: %w", err)
	}
	detailed := rec.DetailedSchedule
	if detailed == nil {
		detailed = map[schedule.Weekday]schedule.TimeSlot{}
	}
	scheduleJSON, err := json.Marshal(detailed)
	if err != nil {
		return courseRow{}, fmt.Errorf("failed to marshal detailed schedule: %w", err)
	}
	return courseRow{
		Position:         position,
		Code:             rec.Code,
		Level:            string(rec.Level),
		Cycle:            rec.Cycle,
		Modality:         string(rec.Modality),
		Instructor:       rec.Instructor,
		Language:         string(rec.Language),
		DetectedDays:     string(daysJSON),
		DetailedSchedule: string(scheduleJSON),
		StartDate:        rec.StartDate,
		EndDate:          rec.EndDate,
		MidtermDate:      rec.MidtermDate,
		FinalDate:        rec.FinalDate,
		GradeUploadDate:  rec.GradeUploadDate,
		Enrolled:         rec.Enrolled,
		Expected:         rec.Expected,
		Passed:           rec.Passed,
		Failed:           rec.Failed,
		NoShow:           rec.NoShow,
		Detail:           rec.Detail,
	}, nil
}

func fromRow(row courseRow) (schedule.CourseRecord, error) {
	rec := schedule.CourseRecord{
		Code:             row.Code,
		Level:            schedule.Level(row.Level),
		Cycle:            row.Cycle,
		Modality:         schedule.Modality(row.Modality),
		Instructor:       row.Instructor,
		Language:         schedule.Language(row.Language),
		DetectedDays:     []string{},
		DetailedSchedule: map[schedule.Weekday]schedule.TimeSlot{},
		StartDate:        utcDate(row.StartDate),
		EndDate:          utcDate(row.EndDate),
		MidtermDate:      utcDate(row.MidtermDate),
		FinalDate:        utcDate(row.FinalDate),
		GradeUploadDate:  utcDate(row.GradeUploadDate),
		Enrolled:         row.Enrolled,
		Expected:         row.Expected,
		Passed:           row.Passed,
		Failed:           row.Failed,
		NoShow:           row.NoShow,
		Detail:           row.Detail,
	}
	if len(row.DetectedDays) > 0 {
		if err := json.Unmarshal([]byte(row.DetectedDays), &rec.DetectedDays); err != nil {
			return rec, fmt.Errorf("failed to unmarshal detected days: %w", err)
		}
	}
	if len(row.DetailedSchedule) > 0 {
		if err := json.Unmarshal([]byte(row.DetailedSchedule), &rec.DetailedSchedule); err != nil {
			return rec, fmt.Errorf("failed to unmarshal detailed schedule: %w", err)
		}
	}
	return rec, nil
}

// utcDate drops the session time zone lib/pq attaches to DATE values
func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
