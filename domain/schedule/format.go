package schedule

import (
	"sort"
	"strings"
	"time"
)

// SortedDays returns the weekdays of a detailed schedule from Monday on.
func SortedDays(detailed map[Weekday]TimeSlot) []Weekday {
	days := make([]Weekday, 0, len(detailed))
	for d := range detailed {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// FormatSchedule renders a detailed schedule as "LUNES: 08:00 - 10:00; ...".
func FormatSchedule(detailed map[Weekday]TimeSlot) string {
	parts := make([]string, 0, len(detailed))
	for _, d := range SortedDays(detailed) {
		parts = append(parts, d.Name()+": "+detailed[d].String())
	}
	return strings.Join(parts, "; ")
}

// FormatDate renders an optional date in DateLayout, or "" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
