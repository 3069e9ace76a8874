package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket taxes income in [Lower, Upper) at RatePercent. A nil Upper
// marks the open-ended top bracket.
type TaxBracket struct {
	Lower       decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper       *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	RatePercent decimal.Decimal  `yaml:"rate_percent" json:"rate_percent"`
}

// Width returns the amount of income the bracket covers, or nil when the
// bracket is unbounded.
func (b TaxBracket) Width() *decimal.Decimal {
	if b.Upper == nil {
		return nil
	}
	w := b.Upper.Sub(b.Lower)
	return &w
}

// Rebate waives tax for incomes at or below Threshold (section 87A).
// With MarginalRelief the tax just above the threshold never exceeds the
// income in excess of it.
type Rebate struct {
	Threshold      decimal.Decimal `yaml:"threshold" json:"threshold"`
	Max            decimal.Decimal `yaml:"max" json:"max"`
	MarginalRelief bool            `yaml:"marginal_relief" json:"marginal_relief"`
}

// SurchargeTier applies RatePercent on tax when taxable income exceeds Above.
type SurchargeTier struct {
	Above       decimal.Decimal `yaml:"above" json:"above"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"rate_percent"`
}

// TaxRegime is one income tax regime for a financial year.
type TaxRegime struct {
	Name                    string          `yaml:"name" json:"name"`
	StandardDeduction       decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	DeductionsAllowed       bool            `yaml:"deductions_allowed" json:"deductions_allowed"`
	Brackets                []TaxBracket    `yaml:"brackets" json:"brackets"`
	Rebate                  Rebate          `yaml:"rebate" json:"rebate"`
	Surcharge               []SurchargeTier `yaml:"surcharge" json:"surcharge"`
	SurchargeMarginalRelief bool            `yaml:"surcharge_marginal_relief" json:"surcharge_marginal_relief"`
}

// Validate checks that brackets start at zero, are contiguous and
// ascending, and that only the last one is unbounded.
func (r TaxRegime) Validate() error {
	if len(r.Brackets) == 0 {
		return fmt.Errorf("regime %q: no brackets", r.Name)
	}
	if !r.Brackets[0].Lower.IsZero() {
		return fmt.Errorf("regime %q: first bracket must start at 0, got %s", r.Name, r.Brackets[0].Lower)
	}
	for i, b := range r.Brackets {
		if b.RatePercent.IsNegative() {
			return fmt.Errorf("regime %q: bracket %d has negative rate", r.Name, i)
		}
		last := i == len(r.Brackets)-1
		if b.Upper == nil {
			if !last {
				return fmt.Errorf("regime %q: only the last bracket may be unbounded", r.Name)
			}
			continue
		}
		if last {
			return fmt.Errorf("regime %q: last bracket must be unbounded", r.Name)
		}
		if !b.Upper.GreaterThan(b.Lower) {
			return fmt.Errorf("regime %q: bracket %d upper %s not above lower %s", r.Name, i, b.Upper, b.Lower)
		}
		if !r.Brackets[i+1].Lower.Equal(*b.Upper) {
			return fmt.Errorf("regime %q: gap between bracket %d and %d", r.Name, i, i+1)
		}
	}
	for i := 1; i < len(r.Surcharge); i++ {
		if !r.Surcharge[i].Above.GreaterThan(r.Surcharge[i-1].Above) {
			return fmt.Errorf("regime %q: surcharge tiers must ascend", r.Name)
		}
	}
	if r.StandardDeduction.IsNegative() || r.Rebate.Threshold.IsNegative() || r.Rebate.Max.IsNegative() {
		return fmt.Errorf("regime %q: deduction and rebate amounts must be non-negative", r.Name)
	}
	return nil
}

// HRAPolicy holds the percentages of the HRA exemption rule.
type HRAPolicy struct {
	MetroPercent      decimal.Decimal `yaml:"metro_percent" json:"metro_percent"`
	NonMetroPercent   decimal.Decimal `yaml:"non_metro_percent" json:"non_metro_percent"`
	RentExcessPercent decimal.Decimal `yaml:"rent_excess_percent" json:"rent_excess_percent"`
}

// GratuityPolicy holds the statutory gratuity limits.
type GratuityPolicy struct {
	Cap                decimal.Decimal `yaml:"cap" json:"cap"`
	MinimumYears       int             `yaml:"minimum_years" json:"minimum_years"`
	CoveredDivisor     int64           `yaml:"covered_divisor" json:"covered_divisor"`
	NotCoveredDivisor  int64           `yaml:"not_covered_divisor" json:"not_covered_divisor"`
	DaysPerYear        int64           `yaml:"days_per_year" json:"days_per_year"`
	RoundUpAfterMonths int             `yaml:"round_up_after_months" json:"round_up_after_months"`
}

// GSTPolicy lists the notified GST slabs.
type GSTPolicy struct {
	Slabs        []decimal.Decimal `yaml:"slabs" json:"slabs"`
	EnforceSlabs bool              `yaml:"enforce_slabs" json:"enforce_slabs"`
}

// PPFPolicy holds the current PPF scheme terms.
type PPFPolicy struct {
	RatePercent    decimal.Decimal `yaml:"rate_percent" json:"rate_percent"`
	MinDeposit     decimal.Decimal `yaml:"min_deposit" json:"min_deposit"`
	MaxDeposit     decimal.Decimal `yaml:"max_deposit" json:"max_deposit"`
	TenureYears    int             `yaml:"tenure_years" json:"tenure_years"`
	ExtensionBlock int             `yaml:"extension_block" json:"extension_block"`
}

// NPSPolicy holds the NPS exit rules.
type NPSPolicy struct {
	MinAnnuityPercent    decimal.Decimal `yaml:"min_annuity_percent" json:"min_annuity_percent"`
	DefaultRetirementAge int             `yaml:"default_retirement_age" json:"default_retirement_age"`
	MaxEntryAge          int             `yaml:"max_entry_age" json:"max_entry_age"`
}

// Policy is the full set of statutory tables the calculators consult.
type Policy struct {
	FinancialYear string               `yaml:"financial_year" json:"financial_year"`
	CessPercent   decimal.Decimal      `yaml:"cess_percent" json:"cess_percent"`
	Regimes       map[string]TaxRegime `yaml:"regimes" json:"regimes"`
	HRA           HRAPolicy            `yaml:"hra" json:"hra"`
	Gratuity      GratuityPolicy       `yaml:"gratuity" json:"gratuity"`
	GST           GSTPolicy            `yaml:"gst" json:"gst"`
	PPF           PPFPolicy            `yaml:"ppf" json:"ppf"`
	NPS           NPSPolicy            `yaml:"nps" json:"nps"`
}

// Regime looks up a tax regime by name.
func (p *Policy) Regime(name string) (TaxRegime, bool) {
	r, ok := p.Regimes[name]
	if ok && r.Name == "" {
		r.Name = name
	}
	return r, ok
}

// Validate checks the policy tables for internal consistency.
func (p *Policy) Validate() error {
	if p.CessPercent.IsNegative() {
		return fmt.Errorf("cess_percent must be non-negative")
	}
	for _, name := range []string{RegimeNew, RegimeOld} {
		r, ok := p.Regime(name)
		if !ok {
			return fmt.Errorf("missing %q tax regime", name)
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if p.HRA.MetroPercent.IsNegative() || p.HRA.NonMetroPercent.IsNegative() || p.HRA.RentExcessPercent.IsNegative() {
		return fmt.Errorf("hra percentages must be non-negative")
	}
	if !p.Gratuity.Cap.IsPositive() {
		return fmt.Errorf("gratuity cap must be positive")
	}
	if p.Gratuity.CoveredDivisor <= 0 || p.Gratuity.NotCoveredDivisor <= 0 || p.Gratuity.DaysPerYear <= 0 {
		return fmt.Errorf("gratuity divisors must be positive")
	}
	if len(p.GST.Slabs) == 0 {
		return fmt.Errorf("gst slabs must not be empty")
	}
	if p.PPF.MinDeposit.GreaterThan(p.PPF.MaxDeposit) {
		return fmt.Errorf("ppf min_deposit %s exceeds max_deposit %s", p.PPF.MinDeposit, p.PPF.MaxDeposit)
	}
	if p.PPF.TenureYears <= 0 {
		return fmt.Errorf("ppf tenure_years must be positive")
	}
	if p.NPS.DefaultRetirementAge <= 0 {
		return fmt.Errorf("nps default_retirement_age must be positive")
	}
	return nil
}
