// Package summary renders a plain-text digest of a month's courses, meant to
// be pasted into an assistant prompt or served as a page.
package summary

import (
	"strings"

	"cargahoraria/domain/schedule"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const (
	heading = "Estos son los horarios de los cursos:"
	closing = "Utiliza esta información para responder dudas sobre horarios, docentes o idiomas de los cursos."
)

// Digest lists every course with a code and a detailed schedule:
//
//	- Curso {code} ({LANGUAGE}) dictado por {instructor}: {days} {slots}
//
// Courses without a structured schedule are left out.
func Digest(records []schedule.CourseRecord) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	for _, rec := range records {
		if line, ok := Line(rec); ok {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(closing)
	return b.String()
}

// Line renders one course; ok is false when the course is left out of the
// digest.
func Line(rec schedule.CourseRecord) (string, bool) {
	if rec.Code == "" || len(rec.DetailedSchedule) == 0 {
		return "", false
	}
	days := "-"
	if len(rec.DetectedDays) > 0 {
		days = strings.Join(rec.DetectedDays, ", ")
	}
	return "Curso " + rec.Code + " (" + rec.Language.Label() + ") dictado por " + rec.Instructor +
		": " + days + " " + schedule.FormatSchedule(rec.DetailedSchedule), true
}

// HTML renders the digest as an HTML fragment
func HTML(records []schedule.CourseRecord) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	// a list must be separated from the heading paragraph by a blank line
	md := strings.Replace(Digest(records), heading+"\n", heading+"\n\n", 1)
	return markdown.ToHTML([]byte(md), p, r)
}
