package calculation

import (
	"fmt"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/dateutil"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
	"github.com/shopspring/decimal"
)

// ExemptionCalculator computes salary exemptions (HRA, gratuity) under the
// limits of a policy.
type ExemptionCalculator struct {
	hra      domain.HRAPolicy
	gratuity domain.GratuityPolicy
}

// NewExemptionCalculator creates an exemption calculator from policy.
func NewExemptionCalculator(policy *domain.Policy) *ExemptionCalculator {
	return &ExemptionCalculator{hra: policy.HRA, gratuity: policy.Gratuity}
}

// HRA returns the exempt part of the house rent allowance: the least of the
// HRA received, rent paid in excess of 10% of salary, and 50% (metro) or
// 40% of salary. Salary is basic plus dearness allowance.
func (ec *ExemptionCalculator) HRA(p domain.HRAParams) (domain.HRAResult, error) {
	amounts := []struct {
		field string
		v     decimal.Decimal
	}{
		{"basic_salary", p.BasicSalary},
		{"dearness_allowance", p.DearnessAllowance},
		{"hra_received", p.HRAReceived},
		{"rent_paid", p.RentPaid},
	}
	for _, a := range amounts {
		if a.v.IsNegative() {
			return domain.HRAResult{}, invalid(a.field, "must be non-negative")
		}
	}

	salary := p.BasicSalary.Add(p.DearnessAllowance)
	share := ec.hra.NonMetroPercent
	if p.Metro {
		share = ec.hra.MetroPercent
	}
	res := domain.HRAResult{
		HRAReceived:   p.HRAReceived,
		RentOverBasic: finmath.ClampZero(p.RentPaid.Sub(finmath.PercentOf(salary, ec.hra.RentExcessPercent))),
		SalaryLimit:   finmath.PercentOf(salary, share),
	}
	exempt := finmath.ClampZero(finmath.MinOf(res.HRAReceived, res.RentOverBasic, res.SalaryLimit))

	// rounding must not lift the exemption above the allowance received
	res.Exemption = finmath.MinOf(finmath.Round(exempt), p.HRAReceived)
	res.TaxableHRA = finmath.Round(p.HRAReceived.Sub(res.Exemption))
	res.RentOverBasic = finmath.Round(res.RentOverBasic)
	res.SalaryLimit = finmath.Round(res.SalaryLimit)
	return res, nil
}

// Gratuity returns the gratuity payable on leaving. Employers covered by
// the Payment of Gratuity Act pay 15 days' wages per year of service on a
// 26-day month, counting a final part-year of more than six months as a
// full year. Others pay 15 days on a 30-day month for completed years.
// Both are capped by policy.
func (ec *ExemptionCalculator) Gratuity(p domain.GratuityParams) (domain.GratuityResult, error) {
	if !p.LastDrawnSalary.IsPositive() {
		return domain.GratuityResult{}, invalid("last_drawn_salary", "must be positive")
	}

	years, err := ec.countedYears(p)
	if err != nil {
		return domain.GratuityResult{}, err
	}

	divisor := ec.gratuity.CoveredDivisor
	res := domain.GratuityResult{CountedYears: years}
	if p.IsCovered() {
		res.Formula = fmt.Sprintf("salary x %d x years / %d", ec.gratuity.DaysPerYear, ec.gratuity.CoveredDivisor)
	} else {
		divisor = ec.gratuity.NotCoveredDivisor
		res.Formula = fmt.Sprintf("salary x %d x completed years / %d", ec.gratuity.DaysPerYear, ec.gratuity.NotCoveredDivisor)
	}

	res.Eligible = p.DeathOrDisability || years >= ec.gratuity.MinimumYears
	if !res.Eligible {
		return res, nil
	}

	res.Computed = p.LastDrawnSalary.
		Mul(decimal.NewFromInt(ec.gratuity.DaysPerYear)).
		Mul(decimal.NewFromInt(int64(years))).
		Div(decimal.NewFromInt(divisor))
	res.Gratuity = res.Computed
	if res.Computed.GreaterThan(ec.gratuity.Cap) {
		res.Gratuity = ec.gratuity.Cap
		res.Capped = true
	}
	res.Computed = finmath.Round(res.Computed)
	res.Gratuity = finmath.Round(res.Gratuity)
	return res, nil
}

func (ec *ExemptionCalculator) countedYears(p domain.GratuityParams) (int, error) {
	roundUp := ec.gratuity.RoundUpAfterMonths
	if p.JoiningDate != "" || p.LeavingDate != "" {
		if p.JoiningDate == "" || p.LeavingDate == "" {
			return 0, invalid("joining_date", "joining and leaving dates must be given together")
		}
		join, err := dateutil.ParseDate(p.JoiningDate)
		if err != nil {
			return 0, invalid("joining_date", "%v", err)
		}
		leave, err := dateutil.ParseDate(p.LeavingDate)
		if err != nil {
			return 0, invalid("leaving_date", "%v", err)
		}
		if !leave.After(join) {
			return 0, invalid("leaving_date", "must be after joining date")
		}
		years, _ := dateutil.ServicePeriod(join, leave)
		if p.IsCovered() && leave.After(join.AddDate(years, roundUp, 0)) {
			years++
		}
		return years, nil
	}

	if p.YearsOfService < 0 || p.MonthsOfService < 0 || p.MonthsOfService > 11 {
		return 0, invalid("months_of_service", "service must be non-negative with months between 0 and 11")
	}
	if p.YearsOfService == 0 && p.MonthsOfService == 0 {
		return 0, invalid("years_of_service", "must be positive")
	}
	years := p.YearsOfService
	if p.IsCovered() && p.MonthsOfService > roundUp {
		years++
	}
	return years, nil
}
