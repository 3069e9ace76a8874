package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
)

// EMI computes the equated monthly installment of a loan and its full
// amortization schedule.
func (e *Engine) EMI(p domain.EMIParams) (domain.EMIResult, error) {
	if err := requirePositive("loan_amount", p.LoanAmount); err != nil {
		return domain.EMIResult{}, err
	}
	if err := requireNonNegative("annual_rate_percent", p.AnnualRatePercent); err != nil {
		return domain.EMIResult{}, err
	}
	if p.TenureYears < 0 || p.TenureMonths < 0 {
		return domain.EMIResult{}, invalid("tenure", "must be non-negative")
	}
	months := p.TotalMonths()
	if months <= 0 {
		return domain.EMIResult{}, invalid("tenure", "must be at least one month")
	}

	s, err := Amortize(p.LoanAmount, perPeriod(p.AnnualRatePercent, monthsPerYear), months)
	if err != nil {
		return domain.EMIResult{}, err
	}
	e.logger.Debugf("emi: %s at %s%% over %d months -> %s", p.LoanAmount, p.AnnualRatePercent, months, s.Installment)
	return domain.EMIResult{
		LoanAmount:    p.LoanAmount,
		TenureMonths:  months,
		MonthlyEMI:    s.Installment,
		TotalInterest: s.TotalInterest,
		TotalPayment:  s.TotalPayment,
		Schedule:      s.Rows,
		Yearly:        s.Years,
	}, nil
}

// CompareLoans prices each offer, including its processing fee, and picks
// the one with the lowest total cost.
func (e *Engine) CompareLoans(p domain.LoanComparisonParams) (domain.LoanComparisonResult, error) {
	if len(p.Options) < 2 {
		return domain.LoanComparisonResult{}, invalid("options", "need at least two loans to compare, got %d", len(p.Options))
	}

	res := domain.LoanComparisonResult{Quotes: make([]domain.LoanQuote, 0, len(p.Options))}
	for i, opt := range p.Options {
		name := opt.Name
		if name == "" {
			name = fmt.Sprintf("Option %d", i+1)
		}
		field := fmt.Sprintf("options[%d]", i)
		if err := requireNonNegative(field+".processing_fee_percent", opt.ProcessingFeePercent); err != nil {
			return domain.LoanComparisonResult{}, err
		}
		emi, err := e.EMI(domain.EMIParams{
			LoanAmount:        opt.Amount,
			AnnualRatePercent: opt.AnnualRatePercent,
			TenureMonths:      opt.TenureMonths,
		})
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return domain.LoanComparisonResult{}, invalid(field+"."+ve.Field, "%s", ve.Reason)
			}
			return domain.LoanComparisonResult{}, err
		}
		fee := finmath.Round(finmath.PercentOf(opt.Amount, opt.ProcessingFeePercent))
		res.Quotes = append(res.Quotes, domain.LoanQuote{
			Name:          name,
			MonthlyEMI:    emi.MonthlyEMI,
			TotalInterest: emi.TotalInterest,
			ProcessingFee: fee,
			TotalCost:     emi.TotalInterest.Add(fee),
		})
	}

	sort.SliceStable(res.Quotes, func(i, j int) bool {
		return res.Quotes[i].TotalCost.LessThan(res.Quotes[j].TotalCost)
	})
	res.Best = res.Quotes[0].Name
	res.Saving = res.Quotes[len(res.Quotes)-1].TotalCost.Sub(res.Quotes[0].TotalCost)
	return res, nil
}
