package calculation

import (
	"testing"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateInflation(t *testing.T) {
	res, err := CalculateInflation(domain.InflationParams{
		CurrentAmount:    dec("100000"),
		InflationPercent: dec("6"),
		Years:            10,
	})
	require.NoError(t, err)

	assertAmount(t, "179084.77", res.FutureCost)
	assertAmount(t, "55839.48", res.PurchasingPower)
	assertAmount(t, "79084.77", res.Increase)
	require.Len(t, res.Series, 11)
	assertAmount(t, "100000.00", res.Series[0].FutureCost)
	assertAmount(t, "106000.00", res.Series[1].FutureCost)
	for i := 1; i < len(res.Series); i++ {
		assert.True(t, res.Series[i].FutureCost.GreaterThan(res.Series[i-1].FutureCost))
		assert.True(t, res.Series[i].PurchasingPower.LessThan(res.Series[i-1].PurchasingPower))
	}
}

func TestInflateDeflateRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		n      int
	}{
		{"typical", "250000", "6", 20},
		{"zero rate", "1000", "0", 15},
		{"high rate long horizon", "12345.67", "18.5", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := dec(tt.amount)
			back := Deflate(Inflate(amount, dec(tt.rate), tt.n), dec(tt.rate), tt.n)
			assert.InDelta(t, amount.InexactFloat64(), back.InexactFloat64(), 1e-6)
		})
	}
}

func TestCalculateInflation_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params domain.InflationParams
	}{
		{"negative amount", domain.InflationParams{CurrentAmount: dec("-1"), InflationPercent: dec("6"), Years: 1}},
		{"negative rate", domain.InflationParams{CurrentAmount: dec("1"), InflationPercent: dec("-6"), Years: 1}},
		{"no years", domain.InflationParams{CurrentAmount: dec("1"), InflationPercent: dec("6")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateInflation(tt.params)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
