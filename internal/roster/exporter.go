package roster

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/errors"
	"cargahoraria/internal/shortname"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Options configures roster export
type Options struct {
	Template  string   // roster template workbook
	OutputDir string   // where filled rosters are written
	Holidays  []string // listed under "Feriados" as given
	Workers   int      // concurrent exports in ExportAll
}

// Exporter fills the roster template for a course
type Exporter struct {
	opts   Options
	logger zerolog.Logger
}

// NewExporter creates an exporter. Workers below 1 means one at a time.
func NewExporter(opts Options, logger zerolog.Logger) *Exporter {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Exporter{opts: opts, logger: logger}
}

// Template cells outside the student list
const (
	courseCell   = "G2"
	startCell    = "H2"
	endCell      = "I2"
	holidayCell  = "G4"
	holidayTitle = "Feriados"
	firstRow     = 2
	dateNumFmt   = "dd-mmm"
)

// Export writes the roster of one course to OutputDir/shortname.FileName(rec)
// and returns the written path.
func (e *Exporter) Export(ctx context.Context, rec schedule.CourseRecord, students []Student) (string, error) {
	return e.exportAs(ctx, rec, students, shortname.FileName(rec))
}

func (e *Exporter) exportAs(ctx context.Context, rec schedule.CourseRecord, students []Student, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.ExportFailed(rec.Code, err)
	}
	if err := os.MkdirAll(e.opts.OutputDir, 0o755); err != nil {
		return "", errors.ExportFailed(rec.Code, err)
	}

	f, err := excelize.OpenFile(e.opts.Template)
	if err != nil {
		return "", errors.ExportFailed(rec.Code, fmt.Errorf("failed to open template: %w", err))
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := e.fill(f, sheet, rec, students); err != nil {
		return "", errors.ExportFailed(rec.Code, err)
	}

	path := filepath.Join(e.opts.OutputDir, name)
	if err := f.SaveAs(path); err != nil {
		return "", errors.ExportFailed(rec.Code, fmt.Errorf("failed to save %s: %w", path, err))
	}

	e.logger.Info().
		Str("course", rec.Code).
		Int("students", len(students)).
		Str("file", path).
		Msg("roster exported")
	return path, nil
}

func (e *Exporter) fill(f *excelize.File, sheet string, rec schedule.CourseRecord, students []Student) error {
	for i, s := range students {
		row := []interface{}{i + 1, s.CourseCode, s.Name, s.Email, s.Phone}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", firstRow+i), &row); err != nil {
			return fmt.Errorf("failed to write student %d: %w", i+1, err)
		}
	}

	if err := f.SetCellValue(sheet, courseCell, CourseBlock(rec)); err != nil {
		return err
	}

	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(dateNumFmt)})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}
	for cell, date := range map[string]*time.Time{startCell: rec.StartDate, endCell: rec.EndDate} {
		if date == nil {
			continue
		}
		if err := f.SetCellValue(sheet, cell, *date); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
			return err
		}
	}

	if err := f.SetCellValue(sheet, holidayCell, holidayTitle); err != nil {
		return err
	}
	for i, h := range e.opts.Holidays {
		if err := f.SetCellValue(sheet, fmt.Sprintf("G%d", 5+i), h); err != nil {
			return err
		}
	}
	return nil
}

// CourseBlock is the "{modality} {level}{cycle}" text of the course cell,
// e.g. "REG B01". Unknown modality or level print as X; a missing cycle is
// left out.
func CourseBlock(rec schedule.CourseRecord) string {
	level := "X"
	if rec.Level != schedule.LevelNone {
		level = rec.Level.Abbrev()
	}
	cycle := ""
	if rec.Cycle != nil {
		cycle = fmt.Sprintf("%02d", *rec.Cycle)
	}
	return rec.Modality.Abbrev() + " " + level + cycle
}

func strPtr(s string) *string { return &s }

// Job is one course to export
type Job struct {
	Record   schedule.CourseRecord
	Students []Student
}

// Result is the outcome of one job
type Result struct {
	Code string
	Path string
	Err  error
}

// ExportAll exports every job with at most Workers running at once. A failed
// course does not stop the others; results keep job order and the returned
// error joins every failure. Courses that would share a file name get their
// code appended so no roster overwrites another.
func (e *Exporter) ExportAll(ctx context.Context, jobs []Job) ([]Result, error) {
	names := fileNames(jobs)
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			path, err := e.exportAs(ctx, job.Record, job.Students, names[i])
			results[i] = Result{Code: job.Record.Code, Path: path, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			e.logger.Warn().Err(r.Err).Str("course", r.Code).Msg("roster export failed")
		}
	}
	e.logger.Info().Int("courses", len(jobs)).Int("failed", len(errs)).Msg("roster export finished")
	return results, stderrors.Join(errs...)
}

func fileNames(jobs []Job) []string {
	count := map[string]int{}
	for _, job := range jobs {
		count[shortname.FileName(job.Record)]++
	}
	names := make([]string, len(jobs))
	for i, job := range jobs {
		name := shortname.FileName(job.Record)
		if count[name] > 1 {
			name = strings.TrimSuffix(name, ".xlsx") + "_" + strings.ReplaceAll(job.Record.Code, "/", "-") + ".xlsx"
		}
		names[i] = name
	}
	return names
}
