package app

import (
	"context"
	stderrors "errors"
	"path/filepath"

	"cargahoraria/internal/errors"
	"cargahoraria/internal/roster"
	"cargahoraria/ports"

	"github.com/rs/zerolog"
)

// RosterExporter fills roster templates
type RosterExporter interface {
	ExportAll(ctx context.Context, jobs []roster.Job) ([]roster.Result, error)
}

// RosterService exports the rosters of courses that have an enrollment file
type RosterService struct {
	schedules     *ScheduleService
	exporter      RosterExporter
	publisher     ports.Publisher
	enrollmentDir string
	logger        zerolog.Logger
}

// NewRosterService creates a roster service. publisher may be nil when
// publishing is not configured.
func NewRosterService(schedules *ScheduleService, exporter RosterExporter, publisher ports.Publisher, enrollmentDir string, logger zerolog.Logger) *RosterService {
	return &RosterService{
		schedules:     schedules,
		exporter:      exporter,
		publisher:     publisher,
		enrollmentDir: enrollmentDir,
		logger:        logger,
	}
}

// Plan lists the courses of a sheet that have an enrollment file. With
// codes, only those courses are kept; a requested code without a file is an
// error.
func (s *RosterService) Plan(ctx context.Context, sheet string, codes []string) ([]roster.Match, error) {
	records, err := s.schedules.Courses(ctx, sheet)
	if err != nil {
		return nil, err
	}
	matches, err := roster.Discover(s.enrollmentDir, records)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return matches, nil
	}

	var selected []roster.Match
	for _, code := range codes {
		found := false
		for _, m := range matches {
			if roster.SameCode(code, m.Record.Code) {
				selected = append(selected, m)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.NotFound("enrollment file for course " + code)
		}
	}
	return selected, nil
}

// Export writes the rosters of the planned courses and, when publish is set,
// uploads each written file. Failures are reported per course in the results
// and joined in the returned error.
func (s *RosterService) Export(ctx context.Context, sheet string, codes []string, publish bool) ([]roster.Result, error) {
	if publish && s.publisher == nil {
		return nil, errors.ConfigInvalid("publishing requested but sftp is not configured")
	}
	matches, err := s.Plan(ctx, sheet, codes)
	if err != nil {
		return nil, err
	}

	var jobs []roster.Job
	var results []roster.Result
	for _, m := range matches {
		students, err := roster.ReadEnrollment(m.Path)
		if err != nil {
			results = append(results, roster.Result{Code: m.Record.Code, Err: err})
			continue
		}
		jobs = append(jobs, roster.Job{Record: m.Record, Students: students})
	}

	exported, _ := s.exporter.ExportAll(ctx, jobs)
	if publish {
		for i := range exported {
			if exported[i].Err != nil {
				continue
			}
			if err := s.publisher.Publish(ctx, exported[i].Path, filepath.Base(exported[i].Path)); err != nil {
				exported[i].Err = err
			}
		}
	}
	results = append(results, exported...)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	s.logger.Info().Int("courses", len(results)).Int("failed", len(errs)).Bool("published", publish).Msg("roster run finished")
	return results, stderrors.Join(errs...)
}
