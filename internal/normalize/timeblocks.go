package normalize

import (
	"strings"

	"cargahoraria/domain/schedule"
)

// MapSchedule assigns the time blocks of an HORAS cell to the detected days.
//
// One block applies to every day. Two blocks apply only when there are at
// least three days: the first block goes to the first day and the second to
// the remaining days. That rule matches how the current sheets are written and
// is not a general scheduling law. Every other shape, and any block that does
// not parse, yields an empty schedule.
func MapSchedule(days []string, hours string) map[schedule.Weekday]schedule.TimeSlot {
	result := map[schedule.Weekday]schedule.TimeSlot{}
	if len(days) == 0 || strings.TrimSpace(hours) == "" {
		return result
	}

	weekdays := make([]schedule.Weekday, 0, len(days))
	for _, name := range days {
		d, ok := schedule.WeekdayFromName(name)
		if !ok {
			return result
		}
		weekdays = append(weekdays, d)
	}

	blocks := strings.Split(hours, ",")
	switch {
	case len(blocks) == 1:
		slot, ok := parseBlock(blocks[0])
		if !ok {
			return result
		}
		for _, d := range weekdays {
			result[d] = slot
		}
	case len(blocks) == 2 && len(weekdays) >= 3:
		first, ok1 := parseBlock(blocks[0])
		rest, ok2 := parseBlock(blocks[1])
		if !ok1 || !ok2 {
			return result
		}
		result[weekdays[0]] = first
		for _, d := range weekdays[1:] {
			result[d] = rest
		}
	}
	return result
}

// parseBlock reads "HH:MM - HH:MM".
func parseBlock(block string) (schedule.TimeSlot, bool) {
	parts := strings.Split(strings.TrimSpace(block), " - ")
	if len(parts) != 2 {
		return schedule.TimeSlot{}, false
	}
	start, ok := schedule.ParseClock(strings.TrimSpace(parts[0]))
	if !ok {
		return schedule.TimeSlot{}, false
	}
	end, ok := schedule.ParseClock(strings.TrimSpace(parts[1]))
	if !ok {
		return schedule.TimeSlot{}, false
	}
	return schedule.TimeSlot{Start: start, End: end}, true
}
