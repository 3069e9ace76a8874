package calculation

import (
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
	"github.com/shopspring/decimal"
)

// cagrPlaces is the precision of a CAGR fraction (0.148698 = 14.8698%).
const cagrPlaces = 6

// CAGR computes the compound annual growth rate between two values:
// (final/initial)^(1/years) - 1. A final value of zero gives -1.
func CAGR(p domain.CAGRParams) (domain.CAGRResult, error) {
	if err := requirePositive("initialValue", p.InitialValue); err != nil {
		return domain.CAGRResult{}, err
	}
	if err := requireNonNegative("finalValue", p.FinalValue); err != nil {
		return domain.CAGRResult{}, err
	}
	if err := requirePositive("years", p.Years); err != nil {
		return domain.CAGRResult{}, err
	}

	rate, err := annualizedRate(p.InitialValue, p.FinalValue, p.Years)
	if err != nil {
		return domain.CAGRResult{}, err
	}
	gain := p.FinalValue.Sub(p.InitialValue)
	return domain.CAGRResult{
		CAGR:           rate.Round(cagrPlaces),
		TotalReturn:    finmath.Round(gain),
		AbsoluteReturn: finmath.Round(finmath.Percent(gain.Div(p.InitialValue))),
	}, nil
}

func annualizedRate(initial, final, years decimal.Decimal) (decimal.Decimal, error) {
	if final.IsZero() {
		return finmath.One.Neg(), nil
	}
	growth, err := finmath.PowFloat(final.Div(initial), 1/years.InexactFloat64())
	if err != nil {
		return decimal.Zero, invalid("years", "growth over %s years is not representable: %v", years, err)
	}
	return growth.Sub(finmath.One), nil
}

// ROI computes the return on investment and, when a holding period is
// given, its annualised equivalent.
func ROI(p domain.ROIParams) (domain.ROIResult, error) {
	if err := requirePositive("amount_invested", p.AmountInvested); err != nil {
		return domain.ROIResult{}, err
	}
	if err := requireNonNegative("amount_returned", p.AmountReturned); err != nil {
		return domain.ROIResult{}, err
	}
	if err := requireNonNegative("years", p.Years); err != nil {
		return domain.ROIResult{}, err
	}

	gain := p.AmountReturned.Sub(p.AmountInvested)
	res := domain.ROIResult{
		Gain:       finmath.Round(gain),
		ROIPercent: finmath.Round(finmath.Percent(gain.Div(p.AmountInvested))),
	}
	if p.Years.IsPositive() {
		rate, err := annualizedRate(p.AmountInvested, p.AmountReturned, p.Years)
		if err != nil {
			return domain.ROIResult{}, err
		}
		annual := finmath.Round(finmath.Percent(rate))
		res.AnnualizedROIPercent = &annual
	}
	return res, nil
}
