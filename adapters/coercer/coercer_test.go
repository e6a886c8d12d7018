package coercer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_StrictLayout(t *testing.T) {
	c := NewCellCoercer(DefaultCoercionConfig())

	got, ok := c.Date("2025-07-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), got)

	got, ok = c.Date("2025-07-15 00:00:00")
	require.True(t, ok)
	assert.Equal(t, 15, got.Day())

	for _, bad := range []string{"15/07/2025", "2025-7-15", "2025-13-01", "45853", "", "julio"} {
		assert.Nil(t, c.DatePtr(bad), bad)
	}
}

func TestInt(t *testing.T) {
	c := NewCellCoercer(DefaultCoercionConfig())

	cases := map[string]*int{
		"12":   intPtr(12),
		" 7 ":  intPtr(7),
		"12.0": intPtr(12),
		"-3":   intPtr(-3),
		"12.5": nil,
		"abc":  nil,
		"":     nil,
		"1e99": nil,
	}
	for raw, want := range cases {
		assert.Equal(t, want, c.IntPtr(raw), raw)
	}

	strict := NewCellCoercer(CoercionConfig{DateLayout: "2006-01-02"})
	assert.Nil(t, strict.IntPtr("12.0"))
}

func TestDigits(t *testing.T) {
	c := NewCellCoercer(DefaultCoercionConfig())

	n, ok := c.Digits(" 15 ")
	assert.True(t, ok)
	assert.Equal(t, 15, n)

	for _, bad := range []string{"-15", "15.0", "1 5", "abc", ""} {
		_, ok := c.Digits(bad)
		assert.False(t, ok, bad)
	}
}

func TestText(t *testing.T) {
	c := NewCellCoercer(DefaultCoercionConfig())
	assert.Equal(t, "Ana María Pérez", c.Text("  Ana\tMaría \n Pérez\x00 "))
}

func intPtr(n int) *int { return &n }
