// Package report aggregates enrollment figures of a normalized run per
// language.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"cargahoraria/domain/schedule"

	"github.com/montanaflynn/stats"
)

// FillStats summarizes enrolled/expected ratios over courses that report
// both numbers with a positive expectation.
type FillStats struct {
	Courses int     `json:"courses"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// LanguageStats is the enrollment summary of one language section
type LanguageStats struct {
	Language schedule.Language `json:"language"`
	Label    string            `json:"label"`
	Courses  int               `json:"courses"`
	Enrolled int               `json:"enrolled"`
	Expected int               `json:"expected"`
	Fill     *FillStats        `json:"fill,omitempty"`
}

// Report is the per-language breakdown plus the sheet total
type Report struct {
	Languages []LanguageStats `json:"languages"`
	Total     LanguageStats   `json:"total"`
}

// Build aggregates records. Languages appear in their canonical order,
// followed by any unrecognized ones in order of first appearance; languages
// without courses are omitted.
func Build(records []schedule.CourseRecord) (*Report, error) {
	groups := map[schedule.Language][]schedule.CourseRecord{}
	order := append([]schedule.Language{}, schedule.Languages...)
	for _, rec := range records {
		if _, seen := groups[rec.Language]; !seen && !known(rec.Language) {
			order = append(order, rec.Language)
		}
		groups[rec.Language] = append(groups[rec.Language], rec)
	}

	rep := &Report{Languages: []LanguageStats{}}
	for _, lang := range order {
		group, ok := groups[lang]
		if !ok {
			continue
		}
		s, err := summarize(group)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize %s: %w", lang, err)
		}
		s.Language = lang
		s.Label = lang.Label()
		rep.Languages = append(rep.Languages, s)
	}

	total, err := summarize(records)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sheet: %w", err)
	}
	total.Label = "TOTAL"
	rep.Total = total
	return rep, nil
}

func known(lang schedule.Language) bool {
	for _, l := range schedule.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

func summarize(records []schedule.CourseRecord) (LanguageStats, error) {
	s := LanguageStats{Courses: len(records)}
	var ratios stats.Float64Data
	for _, rec := range records {
		if rec.Enrolled != nil {
			s.Enrolled += *rec.Enrolled
		}
		if rec.Expected != nil {
			s.Expected += *rec.Expected
		}
		if rec.Enrolled != nil && rec.Expected != nil && *rec.Expected > 0 {
			ratios = append(ratios, float64(*rec.Enrolled)/float64(*rec.Expected))
		}
	}
	if len(ratios) == 0 {
		return s, nil
	}

	fill, err := fillStats(ratios)
	if err != nil {
		return s, err
	}
	s.Fill = fill
	return s, nil
}

func fillStats(ratios stats.Float64Data) (*FillStats, error) {
	mean, err := stats.Mean(ratios)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(ratios)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(ratios)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(ratios)
	if err != nil {
		return nil, err
	}
	return &FillStats{
		Courses: len(ratios),
		Mean:    mean,
		Median:  median,
		Min:     min,
		Max:     max,
	}, nil
}

// Write prints the report as an aligned text table
func (r *Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IDIOMA\tCURSOS\tINSCRITOS\tESPERADOS\tLLENADO PROM.\tLLENADO MEDIANA")
	rows := make([]LanguageStats, 0, len(r.Languages)+1)
	rows = append(append(rows, r.Languages...), r.Total)
	for _, s := range rows {
		mean, median := "-", "-"
		if s.Fill != nil {
			mean = fmt.Sprintf("%.0f%%", s.Fill.Mean*100)
			median = fmt.Sprintf("%.0f%%", s.Fill.Median*100)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n", s.Label, s.Courses, s.Enrolled, s.Expected, mean, median)
	}
	return tw.Flush()
}
