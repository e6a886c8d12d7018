package testkit

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ScheduleGeneratorConfig configures the synthetic schedule sheet generator
type ScheduleGeneratorConfig struct {
	SheetName          string    `json:"sheet_name"`
	CoursesPerLanguage int       `json:"courses_per_language"`
	Instructors        int       `json:"instructors"`
	MaxExpected        int       `json:"max_expected"`
	StartDate          time.Time `json:"start_date"`
	Seed               int64     `json:"seed"`
}

// DefaultScheduleConfig returns defaults sized like a real month
func DefaultScheduleConfig() ScheduleGeneratorConfig {
	return ScheduleGeneratorConfig{
		SheetName:          "Agosto",
		CoursesPerLanguage: 12,
		Instructors:        6,
		MaxExpected:        25,
		StartDate:          Date(2025, time.August, 4),
		Seed:               42,
	}
}

// ScheduleGenerator builds deterministic schedule sheets for tests
type ScheduleGenerator struct {
	config ScheduleGeneratorConfig
	rng    *rand.Rand
}

// NewScheduleGenerator creates a generator seeded from config
func NewScheduleGenerator(config ScheduleGeneratorConfig) *ScheduleGenerator {
	return &ScheduleGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	sectionLabels = []string{"INGLÉS", "PORTUGUÉS", "ITALIANO", "QUECHUA"}
	dayPatterns   = []string{"LUNES, MIÉRCOLES Y VIERNES", "MARTES Y JUEVES", "SÁBADOS", "DOMINGOS", "LUNES A VIERNES"}
	hourBlocks    = []string{"07:00 - 09:00", "09:00 - 11:00", "18:00 - 20:00", "19:30 - 21:30"}
	modalities    = []string{"regular", "intensivo", "superintensivo"}
	levels        = []string{"B", "I", "A"}
)

// Generate returns a sheet with one section per language. Codes are unique
// and numbered by section (1xx, 2xx, ...).
func (g *ScheduleGenerator) Generate() Sheet {
	start := g.config.StartDate
	end := start.AddDate(0, 0, 25)

	sheet := Sheet{
		Name:    g.config.SheetName,
		Title:   "CARGA HORARIA " + strings.ToUpper(g.config.SheetName),
		Headers: ScheduleHeaders,
	}
	for s, label := range sectionLabels {
		if s > 0 {
			sheet.Rows = append(sheet.Rows, []any{label})
		}
		for i := 0; i < g.config.CoursesPerLanguage; i++ {
			sheet.Rows = append(sheet.Rows, []any{
				fmt.Sprintf("%d%02d", s+1, i+1),
				g.cycle(),
				modalities[g.rng.Intn(len(modalities))],
				g.instructor(),
				dayPatterns[g.rng.Intn(len(dayPatterns))],
				hourBlocks[g.rng.Intn(len(hourBlocks))],
				g.enrollment(),
				start,
				end,
			})
		}
	}
	sheet.Rows = append(sheet.Rows, []any{}, []any{"MATRÍCULA " + strings.ToUpper(g.config.SheetName)})
	return sheet
}

func (g *ScheduleGenerator) cycle() string {
	if g.rng.Intn(10) == 0 {
		return "REPASO"
	}
	return fmt.Sprintf("%s%d", levels[g.rng.Intn(len(levels))], g.rng.Intn(12)+1)
}

// instructor leaves roughly a third of the cells blank to exercise
// forward-filling.
func (g *ScheduleGenerator) instructor() string {
	if g.rng.Intn(3) == 0 {
		return ""
	}
	return fmt.Sprintf("Docente %d", g.rng.Intn(g.config.Instructors)+1)
}

func (g *ScheduleGenerator) enrollment() string {
	expected := g.rng.Intn(g.config.MaxExpected) + 5
	enrolled := g.rng.Intn(expected + 1)
	if g.rng.Intn(4) == 0 {
		return fmt.Sprintf("%d", enrolled)
	}
	return fmt.Sprintf("%d/%d", enrolled, expected)
}
