package calculation

import (
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/dateutil"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

// CompoundingFrequencies are the supported compounding periods per year.
var CompoundingFrequencies = []int{1, 2, 4, 12, 52, 365}

func validFrequency(n int) bool {
	for _, f := range CompoundingFrequencies {
		if f == n {
			return true
		}
	}
	return false
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return invalid(field, "must be positive, got %s", v)
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid(field, "must be non-negative, got %s", v)
	}
	return nil
}

func requireYears(field string, n int) error {
	if n <= 0 {
		return invalid(field, "must be positive, got %d", n)
	}
	return nil
}

// inflationRate returns the annual inflation fraction when the toggle is
// on, or nil.
func inflationRate(t domain.InflationToggle) (*decimal.Decimal, error) {
	if !t.AdjustForInflation {
		return nil, nil
	}
	if err := requireNonNegative("inflation_percent", t.InflationPercent); err != nil {
		return nil, err
	}
	r := finmath.Rate(t.InflationPercent)
	return &r, nil
}

// effectiveAnnualRate returns ((1 + r/m)^m - 1) in percent.
func effectiveAnnualRate(annualPercent decimal.Decimal, m int) decimal.Decimal {
	periodic := finmath.Rate(annualPercent).Div(decimal.NewFromInt(int64(m)))
	return finmath.Round(finmath.Percent(finmath.GrowthFactor(periodic, m).Sub(finmath.One)))
}

func perPeriod(annualPercent decimal.Decimal, periods int) decimal.Decimal {
	return finmath.Rate(annualPercent).Div(decimal.NewFromInt(int64(periods)))
}

// SIP projects a monthly systematic investment plan with an optional annual
// step-up. The series is yearly.
func (e *Engine) SIP(p domain.SIPParams) (domain.CalculationResult, error) {
	if err := requirePositive("monthly_investment", p.MonthlyInvestment); err != nil {
		return domain.CalculationResult{}, err
	}
	if err := requireNonNegative("annual_rate_percent", p.AnnualRatePercent); err != nil {
		return domain.CalculationResult{}, err
	}
	if err := requireYears("years", p.Years); err != nil {
		return domain.CalculationResult{}, err
	}
	if err := requireNonNegative("step_up_percent", p.StepUpPercent); err != nil {
		return domain.CalculationResult{}, err
	}
	infl, err := inflationRate(p.InflationToggle)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	plan := GrowthPlan{
		Kind:           PlanRecurring,
		Contribution:   p.MonthlyInvestment,
		PeriodicRate:   perPeriod(p.AnnualRatePercent, monthsPerYear),
		Periods:        p.Years * monthsPerYear,
		InflationRate:  infl,
		PeriodsPerYear: monthsPerYear,
	}
	if p.StepUpPercent.IsPositive() {
		plan.Kind = PlanStepUp
		plan.StepEvery = monthsPerYear
		plan.StepUpRate = finmath.Rate(p.StepUpPercent)
	}
	proj, err := Project(plan)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	e.logger.Debugf("sip: %s/month at %s%% for %d years (%s) -> %s",
		p.MonthlyInvestment, p.AnnualRatePercent, p.Years, plan.Kind, proj.Final().Value.StringFixed(2))
	return proj.Every(monthsPerYear).Result(), nil
}

// SIPGoal returns the monthly investment that reaches the target amount.
func (e *Engine) SIPGoal(p domain.SIPGoalParams) (domain.SIPGoalResult, error) {
	if err := requirePositive("target_amount", p.TargetAmount); err != nil {
		return domain.SIPGoalResult{}, err
	}
	if err := requireNonNegative("annual_rate_percent", p.AnnualRatePercent); err != nil {
		return domain.SIPGoalResult{}, err
	}
	if err := requireYears("years", p.Years); err != nil {
		return domain.SIPGoalResult{}, err
	}

	r := perPeriod(p.AnnualRatePercent, monthsPerYear)
	n := p.Years * monthsPerYear
	monthly, err := RequiredContribution(p.TargetAmount, r, n)
	if err != nil {
		return domain.SIPGoalResult{}, err
	}
	proj, err := Project(GrowthPlan{Kind: PlanRecurring, Contribution: monthly, PeriodicRate: r, Periods: n})
	if err != nil {
		return domain.SIPGoalResult{}, err
	}
	total := monthly.Mul(decimal.NewFromInt(int64(n)))
	return domain.SIPGoalResult{
		TargetAmount:      p.TargetAmount,
		MonthlyInvestment: finmath.Round(monthly),
		TotalInvestment:   finmath.Round(total),
		ExpectedGrowth:    finmath.Round(p.TargetAmount.Sub(total)),
		Projection:        proj.Every(monthsPerYear).Result(),
	}, nil
}

// Lumpsum compounds a one-time investment annually.
func (e *Engine) Lumpsum(p domain.LumpsumParams) (domain.CalculationResult, error) {
	return e.compound(p.Principal, p.AnnualRatePercent, p.Years, 1, p.InflationToggle)
}

// FixedDeposit compounds a deposit at the bank's frequency (quarterly by
// default) and reports the effective annual yield.
func (e *Engine) FixedDeposit(p domain.FixedDepositParams) (domain.CalculationResult, error) {
	m := p.CompoundingPerYear
	if m == 0 {
		m = 4
	}
	return e.compound(p.Principal, p.AnnualRatePercent, p.Years, m, p.InflationToggle)
}

// CompoundInterest compounds a principal at any supported frequency.
func (e *Engine) CompoundInterest(p domain.CompoundInterestParams) (domain.CalculationResult, error) {
	m := p.CompoundingPerYear
	if m == 0 {
		m = 1
	}
	return e.compound(p.Principal, p.AnnualRatePercent, p.Years, m, p.InflationToggle)
}

func (e *Engine) compound(principal, ratePercent decimal.Decimal, years, m int, t domain.InflationToggle) (domain.CalculationResult, error) {
	if err := requirePositive("principal", principal); err != nil {
		return domain.CalculationResult{}, err
	}
	if err := requireNonNegative("annual_rate_percent", ratePercent); err != nil {
		return domain.CalculationResult{}, err
	}
	if err := requireYears("years", years); err != nil {
		return domain.CalculationResult{}, err
	}
	if !validFrequency(m) {
		return domain.CalculationResult{}, invalid("compounding_per_year", "must be one of %v, got %d", CompoundingFrequencies, m)
	}
	infl, err := inflationRate(t)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	proj, err := Project(GrowthPlan{
		Kind:           PlanLumpsum,
		Principal:      principal,
		PeriodicRate:   perPeriod(ratePercent, m),
		Periods:        years * m,
		InflationRate:  infl,
		PeriodsPerYear: m,
	})
	if err != nil {
		return domain.CalculationResult{}, err
	}
	res := proj.Every(m).Result()
	eff := effectiveAnnualRate(ratePercent, m)
	res.Summary.EffectiveRatePercent = &eff
	return res, nil
}

// RecurringDeposit projects monthly deposits compounded at the bank's
// frequency. The quarterly rate is converted into its monthly equivalent
// so that every deposit earns from the month it is made.
func (e *Engine) RecurringDeposit(p domain.RecurringDepositParams) (domain.CalculationResult, error) {
	if err := requirePositive("monthly_deposit", p.MonthlyDeposit); err != nil {
		return domain.CalculationResult{}, err
	}
	if err := requireNonNegative("annual_rate_percent", p.AnnualRatePercent); err != nil {
		return domain.CalculationResult{}, err
	}
	if err := requireYears("months", p.Months); err != nil {
		return domain.CalculationResult{}, err
	}
	q := p.CompoundingPerYear
	if q == 0 {
		q = 4
	}
	if !validFrequency(q) {
		return domain.CalculationResult{}, invalid("compounding_per_year", "must be one of %v, got %d", CompoundingFrequencies, q)
	}

	factor, err := finmath.PowFloat(finmath.One.Add(perPeriod(p.AnnualRatePercent, q)), float64(q)/monthsPerYear)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	proj, err := Project(GrowthPlan{
		Kind:         PlanRecurring,
		Contribution: p.MonthlyDeposit,
		PeriodicRate: factor.Sub(finmath.One),
		Periods:      p.Months,
	})
	if err != nil {
		return domain.CalculationResult{}, err
	}
	res := proj.Every(monthsPerYear).Result()
	eff := effectiveAnnualRate(p.AnnualRatePercent, q)
	res.Summary.EffectiveRatePercent = &eff
	return res, nil
}

// PPF projects a Public Provident Fund account with yearly deposits made at
// the start of each financial year.
func (e *Engine) PPF(p domain.PPFParams) (domain.PPFResult, error) {
	terms := e.policy.PPF
	if p.YearlyDeposit.LessThan(terms.MinDeposit) || p.YearlyDeposit.GreaterThan(terms.MaxDeposit) {
		return domain.PPFResult{}, invalid("yearly_deposit", "must be between %s and %s, got %s",
			terms.MinDeposit, terms.MaxDeposit, p.YearlyDeposit)
	}
	rate := terms.RatePercent
	if p.AnnualRatePercent != nil {
		rate = *p.AnnualRatePercent
	}
	if err := requireNonNegative("annual_rate_percent", rate); err != nil {
		return domain.PPFResult{}, err
	}
	years := p.Years
	if years == 0 {
		years = terms.TenureYears
	}
	if years < terms.TenureYears {
		return domain.PPFResult{}, invalid("years", "PPF matures after %d years, got %d", terms.TenureYears, years)
	}
	if block := terms.ExtensionBlock; block > 0 && (years-terms.TenureYears)%block != 0 {
		return domain.PPFResult{}, invalid("years", "extensions run in blocks of %d years, got %d", block, years)
	}

	proj, err := Project(GrowthPlan{
		Kind:         PlanRecurring,
		Contribution: p.YearlyDeposit,
		PeriodicRate: finmath.Rate(rate),
		Periods:      years,
	})
	if err != nil {
		return domain.PPFResult{}, err
	}
	return domain.PPFResult{
		CalculationResult: proj.Result(),
		AnnualRatePercent: rate,
		MaturityYear:      years,
	}, nil
}

// NPS projects National Pension System contributions until retirement and
// splits the corpus into a lumpsum withdrawal and an annuity purchase.
func (e *Engine) NPS(p domain.NPSParams) (domain.NPSResult, error) {
	terms := e.policy.NPS
	if err := requirePositive("monthly_contribution", p.MonthlyContribution); err != nil {
		return domain.NPSResult{}, err
	}
	if err := requireNonNegative("expected_return_percent", p.ExpectedReturnPercent); err != nil {
		return domain.NPSResult{}, err
	}
	if err := requireNonNegative("annual_step_up_percent", p.AnnualStepUpPercent); err != nil {
		return domain.NPSResult{}, err
	}
	if err := requireNonNegative("annuity_rate_percent", p.AnnuityRatePercent); err != nil {
		return domain.NPSResult{}, err
	}

	age := p.CurrentAge
	if p.BirthDate != "" {
		birth, err := dateutil.ParseDate(p.BirthDate)
		if err != nil {
			return domain.NPSResult{}, invalid("birth_date", "%v", err)
		}
		age = dateutil.Age(birth, nowFunc())
	}
	if age <= 0 {
		return domain.NPSResult{}, invalid("current_age", "must be positive, got %d", age)
	}
	if terms.MaxEntryAge > 0 && age > terms.MaxEntryAge {
		return domain.NPSResult{}, invalid("current_age", "NPS entry closes at %d, got %d", terms.MaxEntryAge, age)
	}
	retirement := p.RetirementAge
	if retirement == 0 {
		retirement = terms.DefaultRetirementAge
	}
	if retirement <= age {
		return domain.NPSResult{}, invalid("retirement_age", "must be after current age %d, got %d", age, retirement)
	}

	annuityShare := p.AnnuityPercent
	if annuityShare.IsZero() {
		annuityShare = terms.MinAnnuityPercent
	}
	if annuityShare.LessThan(terms.MinAnnuityPercent) || annuityShare.GreaterThan(finmath.Hundred) {
		return domain.NPSResult{}, invalid("annuity_percent", "must be between %s and 100, got %s", terms.MinAnnuityPercent, annuityShare)
	}

	years := retirement - age
	plan := GrowthPlan{
		Kind:         PlanRecurring,
		Contribution: p.MonthlyContribution,
		PeriodicRate: perPeriod(p.ExpectedReturnPercent, monthsPerYear),
		Periods:      years * monthsPerYear,
	}
	if p.AnnualStepUpPercent.IsPositive() {
		plan.Kind = PlanStepUp
		plan.StepEvery = monthsPerYear
		plan.StepUpRate = finmath.Rate(p.AnnualStepUpPercent)
	}
	proj, err := Project(plan)
	if err != nil {
		return domain.NPSResult{}, err
	}

	corpus := proj.Final().Value
	annuity := finmath.PercentOf(corpus, annuityShare)
	pension := finmath.PercentOf(annuity, p.AnnuityRatePercent).Div(decimal.NewFromInt(monthsPerYear))
	return domain.NPSResult{
		CalculationResult: proj.Every(monthsPerYear).Result(),
		YearsToRetirement: years,
		LumpsumWithdrawal: finmath.Round(corpus.Sub(annuity)),
		AnnuityCorpus:     finmath.Round(annuity),
		MonthlyPension:    finmath.Round(pension),
	}, nil
}

// MutualFund projects a fund investment at the return net of the expense
// ratio and reports how much the expenses cost over the horizon.
func (e *Engine) MutualFund(p domain.MutualFundParams) (domain.MutualFundResult, error) {
	switch p.Mode {
	case domain.ModeSIP, domain.ModeLumpsum:
	default:
		return domain.MutualFundResult{}, invalid("mode", "must be %q or %q, got %q", domain.ModeLumpsum, domain.ModeSIP, p.Mode)
	}
	if err := requirePositive("amount", p.Amount); err != nil {
		return domain.MutualFundResult{}, err
	}
	if err := requireNonNegative("expected_return_percent", p.ExpectedReturnPercent); err != nil {
		return domain.MutualFundResult{}, err
	}
	if err := requireNonNegative("expense_ratio_percent", p.ExpenseRatioPercent); err != nil {
		return domain.MutualFundResult{}, err
	}
	if err := requireYears("years", p.Years); err != nil {
		return domain.MutualFundResult{}, err
	}
	infl, err := inflationRate(p.InflationToggle)
	if err != nil {
		return domain.MutualFundResult{}, err
	}
	net := p.ExpectedReturnPercent.Sub(p.ExpenseRatioPercent)

	plan := func(ratePercent decimal.Decimal) GrowthPlan {
		switch p.Mode {
		case domain.ModeSIP:
			return GrowthPlan{
				Kind:           PlanRecurring,
				Contribution:   p.Amount,
				PeriodicRate:   perPeriod(ratePercent, monthsPerYear),
				Periods:        p.Years * monthsPerYear,
				InflationRate:  infl,
				PeriodsPerYear: monthsPerYear,
			}
		default:
			return GrowthPlan{
				Kind:           PlanLumpsum,
				Principal:      p.Amount,
				PeriodicRate:   finmath.Rate(ratePercent),
				Periods:        p.Years,
				InflationRate:  infl,
				PeriodsPerYear: 1,
			}
		}
	}

	netProj, err := Project(plan(net))
	if err != nil {
		return domain.MutualFundResult{}, err
	}
	grossProj, err := Project(plan(p.ExpectedReturnPercent))
	if err != nil {
		return domain.MutualFundResult{}, err
	}
	step := 1
	if p.Mode == domain.ModeSIP {
		step = monthsPerYear
	}
	grossValue := grossProj.Final().Value
	return domain.MutualFundResult{
		CalculationResult: netProj.Every(step).Result(),
		NetRatePercent:    net,
		GrossValue:        finmath.Round(grossValue),
		ExpenseDrag:       finmath.Round(grossValue.Sub(netProj.Final().Value)),
	}, nil
}
