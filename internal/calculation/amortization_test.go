package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallment(t *testing.T) {
	emi := Installment(dec("1000000"), dec("0.085").Div(decimal.NewFromInt(12)), 240)
	assert.InDelta(t, 8678.23, emi.InexactFloat64(), 0.01)

	flat := Installment(dec("120000"), decimal.Zero, 24)
	assert.True(t, flat.Equal(dec("5000")))
}

func TestAmortize_Invariants(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		periods   int
	}{
		{"home loan", "1000000", "0.0070833333", 240},
		{"car loan", "750000", "0.0075", 60},
		{"short loan", "10000", "0.01", 1},
		{"zero rate", "100000", "0", 12},
		{"odd amount", "123456.78", "0.0125", 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := dec(tt.principal)
			s, err := Amortize(principal, dec(tt.rate), tt.periods)
			require.NoError(t, err)
			require.Len(t, s.Rows, tt.periods)

			var paid, interest, installments decimal.Decimal
			for i, row := range s.Rows {
				assert.Equal(t, i+1, row.Period)
				assert.False(t, row.Balance.IsNegative(), "row %d", row.Period)
				assert.True(t, row.Installment.Equal(row.Principal.Add(row.Interest)), "row %d", row.Period)
				paid = paid.Add(row.Principal)
				interest = interest.Add(row.Interest)
				installments = installments.Add(row.Installment)
			}
			assert.True(t, s.Rows[len(s.Rows)-1].Balance.IsZero())
			assert.True(t, paid.Equal(principal), "principal repaid %s", paid)
			assert.True(t, installments.Equal(paid.Add(interest)))
			assert.True(t, s.TotalInterest.Equal(interest))
			assert.True(t, s.TotalPayment.Equal(installments))
		})
	}
}

func TestAmortize_ZeroRate(t *testing.T) {
	s, err := Amortize(dec("120000"), decimal.Zero, 12)
	require.NoError(t, err)
	assert.True(t, s.Installment.Equal(dec("10000")))
	assert.True(t, s.TotalInterest.IsZero())
	for _, row := range s.Rows {
		assert.True(t, row.Principal.Equal(dec("10000")))
	}
}

func TestAmortize_YearlyAggregates(t *testing.T) {
	s, err := Amortize(dec("500000"), dec("0.008"), 30)
	require.NoError(t, err)
	require.Len(t, s.Years, 3)
	assert.Equal(t, 1, s.Years[0].Year)
	assert.Equal(t, 3, s.Years[2].Year)

	var principal decimal.Decimal
	for _, y := range s.Years {
		principal = principal.Add(y.Principal)
	}
	assert.True(t, principal.Equal(dec("500000")))
	assert.True(t, s.Years[0].Balance.Equal(s.Rows[11].Balance))
	assert.True(t, s.Years[2].Balance.IsZero())
}

func TestAmortize_SmallPrincipals(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		periods   int
	}{
		{"installment rounds up", "50", "0", 240},
		{"installment rounds down", "1", "0", 37},
		{"small loan with interest", "75", "0.01", 120},
		{"odd paise", "0.37", "0", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := dec(tt.principal)
			s, err := Amortize(principal, dec(tt.rate), tt.periods)
			require.NoError(t, err)
			require.Len(t, s.Rows, tt.periods)

			balance := principal
			var paid decimal.Decimal
			for _, row := range s.Rows {
				assert.True(t, row.Balance.LessThan(balance), "row %d: %s not below %s", row.Period, row.Balance, balance)
				assert.True(t, row.Principal.IsPositive(), "row %d", row.Period)
				balance = row.Balance
				paid = paid.Add(row.Principal)
			}
			assert.True(t, balance.IsZero())
			assert.True(t, paid.Equal(principal))
		})
	}
}

func TestAmortize_RejectsTenureTooLongForAmount(t *testing.T) {
	_, err := Amortize(dec("1"), decimal.Zero, 240)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "tenure")

	_, err = Amortize(dec("1"), dec("0.02"), 360)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAmortize_Validation(t *testing.T) {
	_, err := Amortize(decimal.Zero, dec("0.01"), 12)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Amortize(dec("1000"), dec("0.01"), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Amortize(dec("1000"), dec("-0.01"), 12)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
