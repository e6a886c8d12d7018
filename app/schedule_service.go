package app

import (
	"context"
	"path/filepath"
	"time"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/errors"
	"cargahoraria/internal/normalize"
	"cargahoraria/internal/report"
	"cargahoraria/internal/roster"
	"cargahoraria/internal/shortname"
	"cargahoraria/internal/summary"
	"cargahoraria/ports"

	"github.com/rs/zerolog"
)

// ScheduleService normalizes sheets of one workbook and derives labels,
// digests, reports and stored runs from them
type ScheduleService struct {
	source     ports.SheetSource
	normalizer *normalize.Normalizer
	store      ports.CourseRepository
	logger     zerolog.Logger
}

// NewScheduleService creates a schedule service. store may be nil when no
// database is configured.
func NewScheduleService(source ports.SheetSource, store ports.CourseRepository, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		source:     source,
		normalizer: normalize.NewNormalizer(),
		store:      store,
		logger:     logger,
	}
}

// Workbook returns the path of the workbook being read
func (s *ScheduleService) Workbook() string {
	return s.source.Path()
}

// Sheets lists the sheets of the workbook
func (s *ScheduleService) Sheets(ctx context.Context) ([]string, error) {
	return s.source.Sheets(ctx)
}

// ResolveSheet returns sheet, or the last sheet of the workbook when sheet
// is empty. Months are appended as new sheets, so the last one is current.
func (s *ScheduleService) ResolveSheet(ctx context.Context, sheet string) (string, error) {
	if sheet != "" {
		return sheet, nil
	}
	sheets, err := s.source.Sheets(ctx)
	if err != nil {
		return "", err
	}
	if len(sheets) == 0 {
		return "", errors.SheetNotFound("(workbook has no sheets)")
	}
	return sheets[len(sheets)-1], nil
}

// Courses normalizes a sheet. An empty sheet name selects the last sheet.
func (s *ScheduleService) Courses(ctx context.Context, sheet string) ([]schedule.CourseRecord, error) {
	sheet, err := s.ResolveSheet(ctx, sheet)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	records, err := s.normalizer.NormalizeSheet(ctx, s.source, sheet)
	if err != nil {
		s.logger.Error().Err(err).Str("sheet", sheet).Str("code", errors.GetCode(err)).Msg("normalization failed")
		return nil, err
	}
	s.logger.Info().
		Str("workbook", filepath.Base(s.source.Path())).
		Str("sheet", sheet).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("sheet normalized")
	return records, nil
}

// Course returns the first course of a sheet whose code matches
func (s *ScheduleService) Course(ctx context.Context, sheet, code string) (*schedule.CourseRecord, error) {
	records, err := s.Courses(ctx, sheet)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if roster.SameCode(code, records[i].Code) {
			return &records[i], nil
		}
	}
	return nil, errors.NotFound("course " + code)
}

// ShortName returns the label of a course
func (s *ScheduleService) ShortName(ctx context.Context, sheet, code string) (string, error) {
	rec, err := s.Course(ctx, sheet, code)
	if err != nil {
		return "", err
	}
	return shortname.Label(*rec), nil
}

// Summary returns the text digest of a sheet
func (s *ScheduleService) Summary(ctx context.Context, sheet string) (string, error) {
	records, err := s.Courses(ctx, sheet)
	if err != nil {
		return "", err
	}
	return summary.Digest(records), nil
}

// Report aggregates the enrollment figures of a sheet
func (s *ScheduleService) Report(ctx context.Context, sheet string) (*report.Report, error) {
	records, err := s.Courses(ctx, sheet)
	if err != nil {
		return nil, err
	}
	rep, err := report.Build(records)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build enrollment report")
	}
	return rep, nil
}

// Store normalizes a sheet and saves it as the current run of that sheet
func (s *ScheduleService) Store(ctx context.Context, sheet string) (*schedule.Run, error) {
	if s.store == nil {
		return nil, errors.ConfigInvalid("no course store configured")
	}
	sheet, err := s.ResolveSheet(ctx, sheet)
	if err != nil {
		return nil, err
	}
	records, err := s.Courses(ctx, sheet)
	if err != nil {
		return nil, err
	}

	run := &schedule.Run{Workbook: filepath.Base(s.source.Path()), Sheet: sheet}
	if err := s.store.SaveRun(ctx, run, records); err != nil {
		return nil, errors.Wrapf(err, "failed to store sheet %s", sheet)
	}
	s.logger.Info().Str("run", run.ID).Str("sheet", sheet).Int("records", run.CourseCount).Msg("run stored")
	return run, nil
}

// StoredCourses reads back the stored run of a sheet
func (s *ScheduleService) StoredCourses(ctx context.Context, sheet string) (*schedule.Run, []schedule.CourseRecord, error) {
	if s.store == nil {
		return nil, nil, errors.ConfigInvalid("no course store configured")
	}
	sheet, err := s.ResolveSheet(ctx, sheet)
	if err != nil {
		return nil, nil, err
	}
	run, err := s.store.LatestRun(ctx, filepath.Base(s.source.Path()), sheet)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.store.ListCourses(ctx, run.ID)
	if err != nil {
		return nil, nil, err
	}
	return run, records, nil
}
