package normalize

import (
	"context"
	"strings"

	"cargahoraria/adapters/coercer"
	"cargahoraria/domain/schedule"
	"cargahoraria/internal/errors"
	"cargahoraria/ports"
)

// sentinel marks the enrollment summary block appended below the courses.
const sentinel = "MATRICULA"

// headerToken appears in the code column of repeated header rows.
const headerToken = "CODIGO"

// Normalizer turns one raw schedule sheet into course records
type Normalizer struct {
	coercer *coercer.CellCoercer
}

// NewNormalizer creates a normalizer using the default coercion rules
func NewNormalizer() *Normalizer {
	return &Normalizer{coercer: coercer.NewCellCoercer(coercer.DefaultCoercionConfig())}
}

// columns holds the header names resolved for one table. Missing optional
// columns stay empty and read as blank cells.
type columns struct {
	code, cycle, modality, instructor, days, hours, enrollment string
	dates                                                      [5]string
	passed, failed, noShow, detail                             string
}

func resolveColumns(table *schedule.RawTable) columns {
	find := func(names ...string) string {
		col, _ := table.FindColumn(names...)
		return col
	}
	cols := columns{
		code:       find(schedule.ColCode),
		cycle:      find(schedule.ColCycle),
		modality:   find(schedule.ColModality),
		instructor: find(schedule.ColInstructor),
		days:       find(schedule.ColDays),
		hours:      find(schedule.ColHours),
		enrollment: find(schedule.EnrollmentAliases...),
		passed:     find(schedule.ColPassed),
		failed:     find(schedule.ColFailed),
		noShow:     find(schedule.ColNoShow),
		detail:     find(schedule.ColDetail),
	}
	for i, name := range schedule.DateColumns {
		cols.dates[i] = find(name)
	}
	return cols
}

func cell(row schedule.RawRow, col string) string {
	if col == "" {
		return ""
	}
	return row[col]
}

// NormalizeSheet reads one sheet from src and normalizes it. Only failures to
// read the sheet are returned; an empty result with a nil error means the
// sheet has no courses.
func (n *Normalizer) NormalizeSheet(ctx context.Context, src ports.SheetSource, sheet string) ([]schedule.CourseRecord, error) {
	table, err := src.ReadSheet(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if _, ok := table.FindColumn(schedule.ColCode); !ok {
		return nil, errors.SchemaInvalid("sheet " + sheet + " has no " + schedule.ColCode + " column")
	}
	return n.Normalize(table), nil
}

// Normalize runs the normalization steps over a raw table and returns the
// records in source order.
func (n *Normalizer) Normalize(table *schedule.RawTable) []schedule.CourseRecord {
	cols := resolveColumns(table)

	rows := truncateAtSentinel(table)
	langs := tagLanguages(rows, cols)

	records := make([]schedule.CourseRecord, 0, len(rows))
	lastInstructor := ""
	for i, row := range rows {
		code := n.coercer.Text(cell(row, cols.code))
		if !isCourseCode(code) {
			continue
		}

		instructor := n.coercer.Text(cell(row, cols.instructor))
		if instructor == "" {
			instructor = lastInstructor
		}
		lastInstructor = instructor

		records = append(records, n.buildRecord(row, cols, code, instructor, langs[i]))
	}
	return records
}

func (n *Normalizer) buildRecord(row schedule.RawRow, cols columns, code, instructor string, lang schedule.Language) schedule.CourseRecord {
	lc := safeLevelCycle(cell(row, cols.cycle))

	modality := schedule.ParseModality(cell(row, cols.modality))
	if lc.Override != "" {
		modality = lc.Override
	}

	days := ExtractDays(cell(row, cols.days))
	enrolled, expected := SplitEnrollment(n.coercer, cell(row, cols.enrollment))

	rec := schedule.CourseRecord{
		Code:             code,
		Level:            lc.Level,
		Cycle:            n.coercer.IntPtr(lc.Cycle),
		Modality:         modality,
		Instructor:       instructor,
		Language:         lang,
		DetectedDays:     days,
		DetailedSchedule: MapSchedule(days, cell(row, cols.hours)),
		StartDate:        n.coercer.DatePtr(cell(row, cols.dates[0])),
		EndDate:          n.coercer.DatePtr(cell(row, cols.dates[1])),
		MidtermDate:      n.coercer.DatePtr(cell(row, cols.dates[2])),
		FinalDate:        n.coercer.DatePtr(cell(row, cols.dates[3])),
		GradeUploadDate:  n.coercer.DatePtr(cell(row, cols.dates[4])),
		Enrolled:         enrolled,
		Expected:         expected,
		Passed:           n.coercer.IntPtr(cell(row, cols.passed)),
		Failed:           n.coercer.IntPtr(cell(row, cols.failed)),
		NoShow:           n.coercer.IntPtr(cell(row, cols.noShow)),
		Detail:           n.coercer.Text(cell(row, cols.detail)),
	}
	return rec
}

// truncateAtSentinel drops the sentinel row and everything below it.
func truncateAtSentinel(table *schedule.RawTable) []schedule.RawRow {
	for i, row := range table.Rows {
		if strings.Contains(schedule.Fold(table.FirstCell(row)), sentinel) {
			return table.Rows[:i]
		}
	}
	return table.Rows
}

// tagLanguages scans rows top to bottom carrying the current language. A row
// whose code or cycle names another language switches it, and that row is
// already tagged with the new language.
func tagLanguages(rows []schedule.RawRow, cols columns) []schedule.Language {
	tags := make([]schedule.Language, len(rows))
	current := schedule.LanguageEnglish
	for i, row := range rows {
		code := schedule.Fold(cell(row, cols.code))
		cycle := schedule.Fold(cell(row, cols.cycle))
		for _, lang := range schedule.Languages[1:] {
			label := schedule.Fold(lang.Label())
			if strings.Contains(code, label) || strings.Contains(cycle, label) {
				current = lang
				break
			}
		}
		tags[i] = current
	}
	return tags
}

// isCourseCode rejects blank codes, language section headers and repeated
// header rows.
func isCourseCode(code string) bool {
	if code == "" {
		return false
	}
	folded := schedule.Fold(code)
	if _, ok := schedule.LanguageFromLabel(folded); ok {
		return false
	}
	return !strings.Contains(folded, headerToken)
}
