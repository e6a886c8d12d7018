package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"cargahoraria/adapters/coercer"
	"cargahoraria/domain/schedule"
)

// LevelCycle is what a CICLO cell says about level, cycle and modality.
type LevelCycle struct {
	Level    schedule.Level
	Cycle    string
	Override schedule.Modality // empty unless the cell marks a review course
}

var cyclePattern = regexp.MustCompile(`^([BIA])(\d+)`)

// ExtractLevelCycle reads a cycle label such as "B3", "I12 PORTUGUÉS" or
// "REPASO". Review labels clear level and cycle and override the modality.
// Labels that match neither form yield the zero value.
func ExtractLevelCycle(raw string) LevelCycle {
	value := schedule.Fold(raw)
	if strings.Contains(value, "REPASO") {
		return LevelCycle{Override: schedule.ModalityReview}
	}
	m := cyclePattern.FindStringSubmatch(value)
	if m == nil {
		return LevelCycle{}
	}
	level, ok := schedule.LevelFromLetter(m[1][0])
	if !ok {
		return LevelCycle{}
	}
	return LevelCycle{Level: level, Cycle: m[2]}
}

// safeLevelCycle isolates one row's extraction so a failure there only
// blanks that row.
func safeLevelCycle(raw string) (lc LevelCycle) {
	defer func() {
		if recover() != nil {
			lc = LevelCycle{}
		}
	}()
	return ExtractLevelCycle(raw)
}

// ExtractDays returns the vocabulary day names found in free text such as
// "Lunes, Miércoles y Viernes", in source order. Unknown tokens are dropped.
func ExtractDays(raw string) []string {
	days := []string{}
	if strings.TrimSpace(raw) == "" {
		return days
	}
	text := strings.ReplaceAll(strings.ToUpper(raw), " Y ", ", ")
	for _, token := range strings.Split(text, ",") {
		if d, ok := schedule.WeekdayFromName(strings.TrimSpace(token)); ok {
			days = append(days, d.Name())
		}
	}
	return days
}

// SplitEnrollment reads "enrolled/expected" text. Both sides must be whole
// numbers or the pair is dropped. A bare digit string is the enrolled count.
func SplitEnrollment(c *coercer.CellCoercer, raw string) (enrolled, expected *int) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	if strings.Contains(value, "/") {
		parts := strings.Split(value, "/")
		if len(parts) != 2 {
			return nil, nil
		}
		num, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		exp, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return nil, nil
		}
		return &num, &exp
	}
	if n, ok := c.Digits(value); ok {
		return &n, nil
	}
	return nil, nil
}
