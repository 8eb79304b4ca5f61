package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifplan/ifplan/internal/models"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		digits int
		want   string
	}{
		{"integer grouping", 7668.36599997, 0, "7.668"},
		{"two decimals", 1234.5, 2, "1.234,50"},
		{"three decimals", 0.381516808557, 3, "0,382"},
		{"millions", 2798953.6, 2, "2.798.953,60"},
		{"negative", -12.5, 2, "-12,50"},
		{"tiny negative rounds to zero", -0.0001, 2, "0,00"},
		{"negative digits treated as zero", 42.4, -1, "42"},
		{"NaN", math.NaN(), 2, Unavailable},
		{"+Inf", math.Inf(1), 2, Unavailable},
		{"-Inf", math.Inf(-1), 0, Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.value, tt.digits))
		})
	}
}

func TestFormatter_Field(t *testing.T) {
	var o models.Output
	o.Ml = 0.381516808557
	o.Payback = math.Inf(1)

	ml, _ := models.LookupOutputField("ml")
	payback, _ := models.LookupOutputField("payback")
	itu, _ := models.LookupOutputField("itu")

	f := Default()
	assert.Equal(t, "0,382", f.Field(ml, o))
	assert.Equal(t, "0,382 R$/L", f.WithUnit(ml, o))
	assert.Equal(t, Unavailable, f.WithUnit(payback, o), "unavailable values carry no unit")

	o.Itu = 77.306
	assert.Equal(t, "77,3", f.WithUnit(itu, o), "unitless fields are bare")
}

func TestFormatter_Input(t *testing.T) {
	area, ok := models.LookupInputField("area")
	require.True(t, ok)
	assert.Equal(t, "50,0", Default().Input(area, models.DefaultInput()))
}

func TestNew(t *testing.T) {
	f, err := New("en-US", "2006-01-02")
	require.NoError(t, err)
	assert.Equal(t, "1,234.50", f.Number(1234.5, 2))
	assert.Equal(t, "2026-03-10", f.Date(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))

	f, err = New("pt-BR", "")
	require.NoError(t, err)
	assert.Equal(t, "10/03/2026", f.Date(time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)))

	_, err = New("not a locale!", "")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05/01/2025", Date(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Unavailable, Date(time.Time{}))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+10%", Percent(10))
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "-25%", Percent(-25))
}
