package calculation

// Income tax computation follows the Income Tax Act slab system:
//
// 1. Taxable income is gross income less the regime's standard deduction
//    and, where the regime allows them, chapter VI-A deductions.
// 2. Slab tax is accumulated bracket by bracket, each bracket taxing only
//    the income that falls inside it.
// 3. The section 87A rebate waives tax up to a maximum for incomes at or
//    below the rebate threshold. Regimes with rebate marginal relief cap
//    the tax just above the threshold at the excess income.
// 4. Surcharge applies on the post-rebate tax at the rate of the highest
//    tier crossed. Marginal relief keeps tax plus surcharge from rising by
//    more than the income above the tier threshold.
// 5. Health and education cess is levied on tax plus surcharge.

import (
	"fmt"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
	"github.com/shopspring/decimal"
)

// TaxEngine computes income tax under the regimes of a policy.
type TaxEngine struct {
	policy *domain.Policy
}

// NewTaxEngine creates a tax engine over policy.
func NewTaxEngine(policy *domain.Policy) *TaxEngine {
	return &TaxEngine{policy: policy}
}

// Compute returns the tax payable on gross income under the named regime.
func (te *TaxEngine) Compute(gross decimal.Decimal, regimeName string, deductions decimal.Decimal) (domain.TaxResult, error) {
	if gross.IsNegative() {
		return domain.TaxResult{}, invalid("gross_income", "must be non-negative")
	}
	if deductions.IsNegative() {
		return domain.TaxResult{}, invalid("deductions", "must be non-negative")
	}
	if regimeName == "" {
		regimeName = domain.RegimeNew
	}
	regime, ok := te.policy.Regime(regimeName)
	if !ok {
		return domain.TaxResult{}, invalid("regime", "unknown regime %q", regimeName)
	}

	res := domain.TaxResult{
		Regime:            regime.Name,
		GrossIncome:       gross,
		StandardDeduction: decimal.Min(regime.StandardDeduction, gross),
	}
	if regime.DeductionsAllowed {
		res.Deductions = deductions
	}
	taxable := finmath.ClampZero(gross.Sub(regime.StandardDeduction).Sub(res.Deductions))
	res.TaxableIncome = taxable

	res.BaseTax, res.Brackets = slabTax(regime.Brackets, taxable)
	res.Rebate = rebate(regime.Rebate, taxable, res.BaseTax)
	res.TaxAfterRebate = res.BaseTax.Sub(res.Rebate)

	grossSurcharge, relief := te.surcharge(regime, taxable, res.TaxAfterRebate)
	res.Surcharge = grossSurcharge.Sub(relief)
	res.MarginalRelief = relief

	res.Cess = finmath.PercentOf(res.TaxAfterRebate.Add(res.Surcharge), te.policy.CessPercent)
	res.TotalTax = res.TaxAfterRebate.Add(res.Surcharge).Add(res.Cess)
	if taxable.IsPositive() {
		res.EffectiveRatePercent = finmath.Percent(res.TotalTax.Div(taxable))
	}
	return roundTax(res), nil
}

// CompareRegimes computes the new and old regimes side by side.
func (te *TaxEngine) CompareRegimes(gross, deductions decimal.Decimal) (domain.TaxComparison, error) {
	newTax, err := te.Compute(gross, domain.RegimeNew, deductions)
	if err != nil {
		return domain.TaxComparison{}, err
	}
	oldTax, err := te.Compute(gross, domain.RegimeOld, deductions)
	if err != nil {
		return domain.TaxComparison{}, err
	}
	cmp := domain.TaxComparison{New: newTax, Old: oldTax, Better: domain.RegimeNew}
	if oldTax.TotalTax.LessThan(newTax.TotalTax) {
		cmp.Better = domain.RegimeOld
	}
	cmp.Saving = newTax.TotalTax.Sub(oldTax.TotalTax).Abs()
	return cmp, nil
}

func slabTax(brackets []domain.TaxBracket, taxable decimal.Decimal) (decimal.Decimal, []domain.BracketTax) {
	var total decimal.Decimal
	var parts []domain.BracketTax
	remaining := taxable
	for _, b := range brackets {
		if !remaining.IsPositive() {
			break
		}
		portion := remaining
		if w := b.Width(); w != nil {
			portion = decimal.Min(remaining, *w)
		}
		tax := finmath.PercentOf(portion, b.RatePercent)
		total = total.Add(tax)
		parts = append(parts, domain.BracketTax{
			Lower:       b.Lower,
			Upper:       b.Upper,
			RatePercent: b.RatePercent,
			Taxable:     portion,
			Tax:         tax,
		})
		remaining = remaining.Sub(portion)
	}
	return total, parts
}

func rebate(r domain.Rebate, taxable, tax decimal.Decimal) decimal.Decimal {
	if r.Threshold.IsZero() {
		return decimal.Zero
	}
	if taxable.LessThanOrEqual(r.Threshold) {
		return decimal.Min(tax, r.Max)
	}
	if r.MarginalRelief {
		excess := taxable.Sub(r.Threshold)
		if tax.GreaterThan(excess) {
			return tax.Sub(excess)
		}
	}
	return decimal.Zero
}

// surcharge returns the surcharge on tax and the marginal relief against
// it. The relief never exceeds the surcharge.
func (te *TaxEngine) surcharge(regime domain.TaxRegime, taxable, tax decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	tier := surchargeTier(regime.Surcharge, taxable)
	if tier < 0 {
		return decimal.Zero, decimal.Zero
	}
	rate := regime.Surcharge[tier].RatePercent
	s := finmath.PercentOf(tax, rate)
	if !regime.SurchargeMarginalRelief {
		return s, decimal.Zero
	}

	threshold := regime.Surcharge[tier].Above
	atThreshold, _ := slabTax(regime.Brackets, threshold)
	atThreshold = atThreshold.Sub(rebate(regime.Rebate, threshold, atThreshold))
	if tier > 0 {
		below := regime.Surcharge[tier-1].RatePercent
		atThreshold = atThreshold.Add(finmath.PercentOf(atThreshold, below))
	}
	ceiling := atThreshold.Add(taxable.Sub(threshold))
	over := tax.Add(s).Sub(ceiling)
	if !over.IsPositive() {
		return s, decimal.Zero
	}
	return s, decimal.Min(over, s)
}

// surchargeTier returns the index of the highest tier whose threshold the
// income exceeds, or -1.
func surchargeTier(tiers []domain.SurchargeTier, taxable decimal.Decimal) int {
	idx := -1
	for i, t := range tiers {
		if taxable.GreaterThan(t.Above) {
			idx = i
		}
	}
	return idx
}

func roundTax(r domain.TaxResult) domain.TaxResult {
	r.BaseTax = finmath.Round(r.BaseTax)
	r.Rebate = finmath.Round(r.Rebate)
	r.TaxAfterRebate = finmath.Round(r.TaxAfterRebate)
	r.Surcharge = finmath.Round(r.Surcharge)
	r.MarginalRelief = finmath.Round(r.MarginalRelief)
	r.Cess = finmath.Round(r.Cess)
	r.TotalTax = finmath.Round(r.TotalTax)
	r.EffectiveRatePercent = finmath.Round(r.EffectiveRatePercent)
	for i := range r.Brackets {
		r.Brackets[i].Tax = finmath.Round(r.Brackets[i].Tax)
	}
	return r
}

// describeTax gives a compact one-line summary for debug logs.
func describeTax(r domain.TaxResult) string {
	return fmt.Sprintf("regime=%s taxable=%s tax=%s rebate=%s surcharge=%s cess=%s total=%s",
		r.Regime, r.TaxableIncome, r.BaseTax, r.Rebate, r.Surcharge, r.Cess, r.TotalTax)
}
