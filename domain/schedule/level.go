package schedule

import "strings"

// Level is the proficiency level of a course. Review courses have no level.
type Level string

const (
	LevelNone         Level = ""
	LevelBasic        Level = "Basic"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

var levelLetters = map[byte]Level{
	'B': LevelBasic,
	'I': LevelIntermediate,
	'A': LevelAdvanced,
}

// LevelFromLetter maps the leading letter of a cycle label (B, I, A).
func LevelFromLetter(letter byte) (Level, bool) {
	level, ok := levelLetters[letter]
	return level, ok
}

// Abbrev returns B, I or A, or "NA" when the level is empty or unknown.
func (l Level) Abbrev() string {
	for letter, level := range levelLetters {
		if level == l {
			return string(letter)
		}
	}
	return "NA"
}

// Modality is the pacing style of a course.
type Modality string

const (
	ModalityRegular        Modality = "regular"
	ModalityIntensive      Modality = "intensive"
	ModalitySuperIntensive Modality = "super-intensive"
	ModalityReview         Modality = "review"
)

var modalityAliases = map[string]Modality{
	"REGULAR":         ModalityRegular,
	"INTENSIVO":       ModalityIntensive,
	"INTENSIVE":       ModalityIntensive,
	"SUPERINTENSIVO":  ModalitySuperIntensive,
	"SUPER-INTENSIVE": ModalitySuperIntensive,
	"SUPERINTENSIVE":  ModalitySuperIntensive,
	"SUPER INTENSIVO": ModalitySuperIntensive,
	"REPASO":          ModalityReview,
	"REVIEW":          ModalityReview,
}

var modalityAbbrevs = map[Modality]string{
	ModalityRegular:        "REG",
	ModalityIntensive:      "INT",
	ModalitySuperIntensive: "SINT",
	ModalityReview:         "REP",
}

// ParseModality maps sheet text ("intensivo", "Súperintensivo", ...) to a
// canonical modality. Unrecognized text is kept, lower-cased.
func ParseModality(raw string) Modality {
	if m, ok := modalityAliases[Fold(raw)]; ok {
		return m
	}
	return Modality(strings.ToLower(strings.TrimSpace(raw)))
}

// Known reports whether m is one of the four canonical modalities.
func (m Modality) Known() bool {
	_, ok := modalityAbbrevs[m]
	return ok
}

// Abbrev returns REG, INT, SINT or REP, or "X" for anything else.
func (m Modality) Abbrev() string {
	if abbr, ok := modalityAbbrevs[m]; ok {
		return abbr
	}
	return "X"
}
