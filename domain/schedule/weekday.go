package schedule

import (
	"fmt"
	"regexp"
	"strconv"
)

// Weekday indexes the week from Monday (0) to Sunday (6).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DayNames is the fixed vocabulary of day names accepted in the DIAS column,
// indexed by Weekday.
var DayNames = [7]string{"LUNES", "MARTES", "MIÉRCOLES", "JUEVES", "VIERNES", "SÁBADOS", "DOMINGOS"}

var dayLetters = [7]string{"L", "M", "X", "J", "V", "S", "D"}

// WeekdayFromName resolves a vocabulary name, ignoring case and accents.
func WeekdayFromName(name string) (Weekday, bool) {
	folded := Fold(name)
	for i, day := range DayNames {
		if Fold(day) == folded {
			return Weekday(i), true
		}
	}
	return 0, false
}

// Valid reports whether d is within Monday..Sunday.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Name returns the canonical vocabulary name.
func (d Weekday) Name() string {
	if !d.Valid() {
		return strconv.Itoa(int(d))
	}
	return DayNames[d]
}

// Letter returns the one-letter code used in course labels (X is Wednesday).
func (d Weekday) Letter() string {
	if !d.Valid() {
		return "?"
	}
	return dayLetters[d]
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock accepts 24-hour "HH:MM" (a single-digit hour is tolerated).
func ParseClock(s string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return Clock{Hour: hour, Minute: minute}, true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// TimeSlot is the class time of one weekday.
type TimeSlot struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

func (s TimeSlot) String() string {
	return s.Start.String() + " - " + s.End.String()
}

// MarshalText lets Clock serialize as "HH:MM" in JSON.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, ok := ParseClock(string(text))
	if !ok {
		return fmt.Errorf("invalid clock %q", string(text))
	}
	*c = parsed
	return nil
}
