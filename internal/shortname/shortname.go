// Package shortname builds the compact course labels used for roster file
// names, e.g. "Ana Ruiz-ING REG01(B)-LX-08-00-10-00".
package shortname

import (
	"fmt"
	"sort"
	"strings"

	"cargahoraria/domain/schedule"
)

// Label formats
//
//	{instructor}-{language} {modality}{cycle}({level})-{day letters}-{time ranges}
//
// Day letters come from the detailed schedule and are sorted alphabetically.
// Each distinct slot is written HH-MM-HH-MM; slots are sorted and joined
// with "-". A missing cycle prints as 00.
func Label(rec schedule.CourseRecord) string {
	cycle := "00"
	if rec.Cycle != nil {
		cycle = fmt.Sprintf("%02d", *rec.Cycle)
	}
	return fmt.Sprintf("%s-%s %s%s(%s)-%s-%s",
		strings.TrimSpace(rec.Instructor),
		rec.Language.Abbrev(),
		rec.Modality.Abbrev(),
		cycle,
		rec.Level.Abbrev(),
		dayLetters(rec.DetailedSchedule),
		timeRanges(rec.DetailedSchedule),
	)
}

// FileName is the roster workbook name for a course: the label with path
// separators replaced, plus .xlsx.
func FileName(rec schedule.CourseRecord) string {
	return strings.ReplaceAll(Label(rec), "/", "-") + ".xlsx"
}

func dayLetters(detailed map[schedule.Weekday]schedule.TimeSlot) string {
	letters := make([]string, 0, len(detailed))
	for d := range detailed {
		letters = append(letters, d.Letter())
	}
	sort.Strings(letters)
	return strings.Join(letters, "")
}

func timeRanges(detailed map[schedule.Weekday]schedule.TimeSlot) string {
	seen := map[string]bool{}
	ranges := make([]string, 0, len(detailed))
	for _, slot := range detailed {
		r := fmt.Sprintf("%02d-%02d-%02d-%02d", slot.Start.Hour, slot.Start.Minute, slot.End.Hour, slot.End.Minute)
		if !seen[r] {
			seen[r] = true
			ranges = append(ranges, r)
		}
	}
	sort.Strings(ranges)
	return strings.Join(ranges, "-")
}
