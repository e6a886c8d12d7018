package schedule

// Language is the language a course teaches
type Language string

const (
	LanguageEnglish    Language = "English"
	LanguagePortuguese Language = "Portuguese"
	LanguageItalian    Language = "Italian"
	LanguageQuechua    Language = "Quechua"
)

// Languages lists the known languages, English first. English is the
// default section of every sheet; the others are switched to by name.
var Languages = []Language{
	LanguageEnglish,
	LanguagePortuguese,
	LanguageItalian,
	LanguageQuechua,
}

var languageLabels = map[Language]string{
	LanguageEnglish:    "INGLÉS",
	LanguagePortuguese: "PORTUGUÉS",
	LanguageItalian:    "ITALIANO",
	LanguageQuechua:    "QUECHUA",
}

var languageAbbrevs = map[Language]string{
	LanguageEnglish:    "ING",
	LanguagePortuguese: "PORT",
	LanguageItalian:    "ITA",
	LanguageQuechua:    "QUE",
}

// Label returns the Spanish upper-case name used in the schedule sheets.
func (l Language) Label() string {
	if label, ok := languageLabels[l]; ok {
		return label
	}
	return string(l)
}

// Abbrev returns the short code used in course labels. Unknown values fall
// back to the first three letters, upper-cased.
func (l Language) Abbrev() string {
	if abbr, ok := languageAbbrevs[l]; ok {
		return abbr
	}
	return upperPrefix(string(l), 3)
}

// LanguageFromLabel resolves a sheet label (accent and case insensitive).
func LanguageFromLabel(label string) (Language, bool) {
	folded := Fold(label)
	for _, lang := range Languages {
		if Fold(lang.Label()) == folded {
			return lang, true
		}
	}
	return "", false
}

func upperPrefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return Fold(string(r))
}
