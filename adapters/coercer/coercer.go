package coercer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cargahoraria/domain/schedule"
)

// CellCoercer turns loosely typed sheet cells into typed values. Every method
// reports failure through its second return value; nothing panics or errors.
type CellCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the accepted formats
type CoercionConfig struct {
	DateLayout        string `json:"date_layout"`         // only layout accepted for dates
	AllowIntegralReal bool   `json:"allow_integral_real"` // accept "12.0" as 12
	CollapseSpaces    bool   `json:"collapse_spaces"`     // squeeze internal whitespace in text
}

// DefaultCoercionConfig returns the rules used for schedule sheets
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		DateLayout:        schedule.DateLayout,
		AllowIntegralReal: true,
		CollapseSpaces:    true,
	}
}

// NewCellCoercer creates a coercer with the given config
func NewCellCoercer(config CoercionConfig) *CellCoercer {
	return &CellCoercer{config: config}
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date parses strictly in the configured layout. A trailing midnight time
// ("2025-07-15 00:00:00"), as written by some exports, is tolerated.
func (c *CellCoercer) Date(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	s = strings.TrimSuffix(s, " 00:00:00")
	if c.config.DateLayout == schedule.DateLayout && !isoDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(c.config.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DatePtr is Date returning nil when the cell cannot be parsed.
func (c *CellCoercer) DatePtr(raw string) *time.Time {
	if t, ok := c.Date(raw); ok {
		return &t
	}
	return nil
}

// Int parses a whole number. Integral reals ("12.0") are accepted when the
// config allows it; anything else fails.
func (c *CellCoercer) Int(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if !c.config.AllowIntegralReal {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// IntPtr is Int returning nil when the cell cannot be parsed.
func (c *CellCoercer) IntPtr(raw string) *int {
	if n, ok := c.Int(raw); ok {
		return &n
	}
	return nil
}

// Digits parses s only when every character is an ASCII digit.
func (c *CellCoercer) Digits(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

var spaces = regexp.MustCompile(`\s+`)

// Text trims the cell, drops control characters and optionally collapses
// runs of whitespace. Case is preserved.
func (c *CellCoercer) Text(raw string) string {
	s := strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, raw)
	s = strings.TrimSpace(s)
	if c.config.CollapseSpaces {
		s = spaces.ReplaceAllString(s, " ")
	}
	return s
}
