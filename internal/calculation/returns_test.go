package calculation

import (
	"testing"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCAGR(t *testing.T) {
	tests := []struct {
		name         string
		params       domain.CAGRParams
		wantCAGR     string
		wantTotal    string
		wantAbsolute string
	}{
		{
			name:         "doubling over five years",
			params:       domain.CAGRParams{InitialValue: dec("100000"), FinalValue: dec("200000"), Years: dec("5")},
			wantCAGR:     "0.148698",
			wantTotal:    "100000.00",
			wantAbsolute: "100.00",
		},
		{
			name:         "one year",
			params:       domain.CAGRParams{InitialValue: dec("1000"), FinalValue: dec("1100"), Years: dec("1")},
			wantCAGR:     "0.100000",
			wantTotal:    "100.00",
			wantAbsolute: "10.00",
		},
		{
			name:         "loss",
			params:       domain.CAGRParams{InitialValue: dec("1000"), FinalValue: dec("810"), Years: dec("2")},
			wantCAGR:     "-0.100000",
			wantTotal:    "-190.00",
			wantAbsolute: "-19.00",
		},
		{
			name:         "total loss",
			params:       domain.CAGRParams{InitialValue: dec("1000"), FinalValue: dec("0"), Years: dec("3")},
			wantCAGR:     "-1.000000",
			wantTotal:    "-1000.00",
			wantAbsolute: "-100.00",
		},
		{
			name:         "unchanged",
			params:       domain.CAGRParams{InitialValue: dec("500"), FinalValue: dec("500"), Years: dec("7")},
			wantCAGR:     "0.000000",
			wantTotal:    "0.00",
			wantAbsolute: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CAGR(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCAGR, res.CAGR.StringFixed(6))
			assertAmount(t, tt.wantTotal, res.TotalReturn)
			assertAmount(t, tt.wantAbsolute, res.AbsoluteReturn)
		})
	}
}

func TestCAGR_FractionalYears(t *testing.T) {
	res, err := CAGR(domain.CAGRParams{InitialValue: dec("100"), FinalValue: dec("121"), Years: dec("2.5")})
	require.NoError(t, err)
	assert.InDelta(t, 0.079230, res.CAGR.InexactFloat64(), 1e-6)
}

func TestCAGR_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params domain.CAGRParams
		field  string
	}{
		{"zero initial", domain.CAGRParams{FinalValue: dec("1"), Years: dec("1")}, "initialValue"},
		{"negative final", domain.CAGRParams{InitialValue: dec("1"), FinalValue: dec("-1"), Years: dec("1")}, "finalValue"},
		{"zero years", domain.CAGRParams{InitialValue: dec("1"), FinalValue: dec("2")}, "years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CAGR(tt.params)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestROI(t *testing.T) {
	res, err := ROI(domain.ROIParams{AmountInvested: dec("50000"), AmountReturned: dec("65000")})
	require.NoError(t, err)
	assertAmount(t, "15000.00", res.Gain)
	assertAmount(t, "30.00", res.ROIPercent)
	assert.Nil(t, res.AnnualizedROIPercent)

	res, err = ROI(domain.ROIParams{AmountInvested: dec("100000"), AmountReturned: dec("200000"), Years: dec("5")})
	require.NoError(t, err)
	require.NotNil(t, res.AnnualizedROIPercent)
	assertAmount(t, "14.87", *res.AnnualizedROIPercent)

	_, err = ROI(domain.ROIParams{AmountReturned: dec("1")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
