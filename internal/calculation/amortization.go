package calculation

import (
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
	"github.com/shopspring/decimal"
)

// Schedule is a fully amortized loan.
type Schedule struct {
	Installment   decimal.Decimal
	Rows          []domain.AmortizationRow
	Years         []domain.AmortizationYear
	TotalInterest decimal.Decimal
	TotalPayment  decimal.Decimal
}

// Installment returns the level payment P·r·(1+r)^n / ((1+r)^n - 1), or P/n
// when r is zero.
func Installment(principal, r decimal.Decimal, n int) decimal.Decimal {
	count := decimal.NewFromInt(int64(n))
	if r.IsZero() {
		return principal.Div(count)
	}
	growth := finmath.GrowthFactor(r, n)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(finmath.One))
}

// Amortize builds the repayment schedule of principal over n periods at the
// periodic rate r. Each row closes at the exact level-payment balance
// rounded to two places, so the schedule always runs n rows, the balance
// falls every period and the last row ends at zero. Loans whose first
// installment would repay less than one paisa of principal are rejected.
func Amortize(principal, r decimal.Decimal, n int) (Schedule, error) {
	if !principal.IsPositive() {
		return Schedule{}, invalid("principal", "must be positive")
	}
	if n <= 0 {
		return Schedule{}, invalid("tenure", "must be positive, got %d", n)
	}
	if r.IsNegative() {
		return Schedule{}, invalid("rate", "must be non-negative")
	}

	exact := Installment(principal, r, n)
	if exact.Sub(principal.Mul(r)).LessThan(paisa) {
		return Schedule{}, invalid("tenure", "%d periods is too long for %s: the balance would not fall by a paisa each period", n, principal)
	}
	s := Schedule{Installment: finmath.Round(exact), Rows: make([]domain.AmortizationRow, 0, n)}

	balance := principal
	for k := 1; k <= n; k++ {
		interest := finmath.Round(balance.Mul(r))
		next := decimal.Zero
		if k < n {
			next = finmath.Round(balanceAfter(principal, exact, r, k, n))
		}
		row := domain.AmortizationRow{
			Period:      k,
			Installment: balance.Sub(next).Add(interest),
			Principal:   balance.Sub(next),
			Interest:    interest,
			Balance:     next,
		}
		balance = next
		s.TotalInterest = s.TotalInterest.Add(interest)
		s.TotalPayment = s.TotalPayment.Add(row.Installment)
		s.Rows = append(s.Rows, row)
	}
	s.Years = yearly(s.Rows)
	return s, nil
}

var paisa = decimal.New(1, -2)

// balanceAfter is the outstanding balance after k level payments:
// P(1+r)^k - I((1+r)^k - 1)/r, or P(n-k)/n when r is zero.
func balanceAfter(principal, installment, r decimal.Decimal, k, n int) decimal.Decimal {
	if r.IsZero() {
		return principal.Mul(decimal.NewFromInt(int64(n - k))).Div(decimal.NewFromInt(int64(n)))
	}
	g := finmath.GrowthFactor(r, k)
	return principal.Mul(g).Sub(installment.Mul(g.Sub(finmath.One)).Div(r))
}

func yearly(rows []domain.AmortizationRow) []domain.AmortizationYear {
	var years []domain.AmortizationYear
	for i, row := range rows {
		if i%12 == 0 {
			years = append(years, domain.AmortizationYear{Year: i/12 + 1})
		}
		y := &years[len(years)-1]
		y.Principal = y.Principal.Add(row.Principal)
		y.Interest = y.Interest.Add(row.Interest)
		y.Balance = row.Balance
	}
	return years
}
