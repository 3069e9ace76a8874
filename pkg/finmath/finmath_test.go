package finmath

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateAndPercent(t *testing.T) {
	r := Rate(decimal.NewFromFloat(7.5))
	if r.String() != "0.075" {
		t.Fatalf("Rate(7.5) got %s", r)
	}
	if got := Percent(r).String(); got != "7.5" {
		t.Fatalf("Percent round trip got %s", got)
	}
	if got := PercentOf(decimal.NewFromInt(10000), decimal.NewFromInt(18)).String(); got != "1800" {
		t.Fatalf("PercentOf got %s", got)
	}
}

func TestPowInt(t *testing.T) {
	cases := []struct {
		base string
		n    int
		want float64
	}{
		{"1.01", 0, 1},
		{"1.01", 1, 1.01},
		{"1.01", 120, math.Pow(1.01, 120)},
		{"1.0175", 20, math.Pow(1.0175, 20)},
		{"1.00708333333333333", 240, math.Pow(1+0.085/12, 240)},
		{"2", -2, 0.25},
	}
	for _, c := range cases {
		base, err := decimal.NewFromString(c.base)
		require.NoError(t, err)
		got := PowInt(base, c.n).InexactFloat64()
		assert.InEpsilon(t, c.want, got, 1e-12, "%s^%d", c.base, c.n)
	}
}

func TestPowFloat(t *testing.T) {
	got, err := PowFloat(decimal.NewFromInt(2), 1.0/5)
	require.NoError(t, err)
	assert.InDelta(t, 1.148698355, got.InexactFloat64(), 1e-9)

	exact, err := PowFloat(decimal.NewFromFloat(1.1), 3)
	require.NoError(t, err)
	assert.Equal(t, "1.331", exact.String())

	_, err = PowFloat(decimal.NewFromInt(-8), 0.5)
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = PowFloat(decimal.Zero, -1)
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestHelpers(t *testing.T) {
	a := decimal.NewFromInt(10)
	b := decimal.NewFromInt(-3)

	assert.True(t, ClampZero(b).IsZero())
	assert.True(t, ClampZero(a).Equal(a))
	assert.True(t, MinOf(a, b, decimal.NewFromInt(4)).Equal(b))
	assert.Equal(t, "12.35", Round(decimal.NewFromFloat(12.345)).String())
	assert.True(t, GrowthFactor(decimal.NewFromFloat(0.1), 2).Equal(decimal.NewFromFloat(1.21)))

	slabs := []decimal.Decimal{decimal.NewFromInt(5), decimal.NewFromInt(18)}
	assert.True(t, IsOneOf(decimal.NewFromInt(18), slabs))
	assert.False(t, IsOneOf(decimal.NewFromInt(7), slabs))
}
