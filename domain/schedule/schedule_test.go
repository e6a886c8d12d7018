package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "MIERCOLES", Fold(" miércoles "))
	assert.Equal(t, "PORTUGUES", Fold("Portugués"))
	assert.Equal(t, "MATRICULA 2025", Fold("Matrícula 2025"))
}

func TestLanguageLabelsAndAbbrevs(t *testing.T) {
	assert.Equal(t, "PORTUGUÉS", LanguagePortuguese.Label())
	assert.Equal(t, "PORT", LanguagePortuguese.Abbrev())
	assert.Equal(t, "FRE", Language("French").Abbrev())

	lang, ok := LanguageFromLabel("portugues")
	assert.True(t, ok)
	assert.Equal(t, LanguagePortuguese, lang)

	_, ok = LanguageFromLabel("ALEMÁN")
	assert.False(t, ok)
}

func TestParseModality(t *testing.T) {
	cases := map[string]Modality{
		"regular":        ModalityRegular,
		"Intensivo":      ModalityIntensive,
		"súperintensivo": ModalitySuperIntensive,
		"SUPERINTENSIVO": ModalitySuperIntensive,
		"repaso":         ModalityReview,
		"Virtual":        Modality("virtual"),
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseModality(raw), raw)
	}
	assert.Equal(t, "X", Modality("virtual").Abbrev())
	assert.Equal(t, "SINT", ModalitySuperIntensive.Abbrev())
}

func TestLevelAbbrev(t *testing.T) {
	assert.Equal(t, "B", LevelBasic.Abbrev())
	assert.Equal(t, "A", LevelAdvanced.Abbrev())
	assert.Equal(t, "NA", LevelNone.Abbrev())
}

func TestWeekdayFromName(t *testing.T) {
	d, ok := WeekdayFromName("MIERCOLES")
	require.True(t, ok)
	assert.Equal(t, Wednesday, d)
	assert.Equal(t, "MIÉRCOLES", d.Name())
	assert.Equal(t, "X", d.Letter())

	_, ok = WeekdayFromName("FERIADO")
	assert.False(t, ok)
}

func TestParseClock(t *testing.T) {
	c, ok := ParseClock("08:05")
	require.True(t, ok)
	assert.Equal(t, Clock{Hour: 8, Minute: 5}, c)
	assert.Equal(t, "08:05", c.String())

	for _, bad := range []string{"8am", "24:00", "08:60", "08-00", " 08:00", ""} {
		_, ok := ParseClock(bad)
		assert.False(t, ok, bad)
	}
}

func TestTimeSlotJSON(t *testing.T) {
	slot := TimeSlot{Start: Clock{Hour: 14}, End: Clock{Hour: 16, Minute: 30}}
	data, err := json.Marshal(map[Weekday]TimeSlot{Tuesday: slot})
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"start":"14:00","end":"16:30"}}`, string(data))

	var back map[Weekday]TimeSlot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, slot, back[Tuesday])
}

func TestRawTableFindColumn(t *testing.T) {
	table := &RawTable{Headers: []string{"CODIGO", "N° Inscritos"}}
	col, ok := table.FindColumn(EnrollmentAliases...)
	require.True(t, ok)
	assert.Equal(t, "N° Inscritos", col)
	assert.True(t, table.HasColumn("CODIGO"))
	assert.Len(t, Columns, 19)
}
