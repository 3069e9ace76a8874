package calculation

import (
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
	"github.com/shopspring/decimal"
)

// Deflate converts a nominal amount n periods ahead into today's money:
// nominal / (1 + ratePercent/100)^n.
func Deflate(nominal, ratePercent decimal.Decimal, n int) decimal.Decimal {
	return nominal.Div(finmath.GrowthFactor(finmath.Rate(ratePercent), n))
}

// Inflate is the inverse of Deflate.
func Inflate(amount, ratePercent decimal.Decimal, n int) decimal.Decimal {
	return amount.Mul(finmath.GrowthFactor(finmath.Rate(ratePercent), n))
}

// CalculateInflation projects what today's amount will cost after each
// year and what it will be worth in today's money.
func CalculateInflation(p domain.InflationParams) (domain.InflationResult, error) {
	if p.CurrentAmount.IsNegative() {
		return domain.InflationResult{}, invalid("current_amount", "must be non-negative")
	}
	if p.InflationPercent.IsNegative() {
		return domain.InflationResult{}, invalid("inflation_percent", "must be non-negative")
	}
	if p.Years <= 0 {
		return domain.InflationResult{}, invalid("years", "must be positive, got %d", p.Years)
	}

	res := domain.InflationResult{Series: make([]domain.InflationPoint, 0, p.Years+1)}
	for y := 0; y <= p.Years; y++ {
		res.Series = append(res.Series, domain.InflationPoint{
			Year:            y,
			FutureCost:      finmath.Round(Inflate(p.CurrentAmount, p.InflationPercent, y)),
			PurchasingPower: finmath.Round(Deflate(p.CurrentAmount, p.InflationPercent, y)),
		})
	}
	last := res.Series[len(res.Series)-1]
	res.FutureCost = last.FutureCost
	res.PurchasingPower = last.PurchasingPower
	res.Increase = last.FutureCost.Sub(finmath.Round(p.CurrentAmount))
	return res, nil
}
