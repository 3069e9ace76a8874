package domain

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Units attached to report metrics.
const (
	UnitAmount  = "amount"
	UnitPercent = "percent"
	UnitRatio   = "ratio"
	UnitCount   = "count"
	UnitText    = "text"
)

// Metric is one labelled headline number of a result.
type Metric struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
	Text  string          `json:"text,omitempty"`
}

// Display renders the metric value for humans.
func (m Metric) Display() string {
	switch m.Unit {
	case UnitText:
		return m.Text
	case UnitPercent:
		return m.Value.StringFixed(2) + "%"
	case UnitRatio:
		return m.Value.StringFixed(6)
	case UnitCount:
		return m.Value.String()
	default:
		return m.Value.StringFixed(2)
	}
}

func amount(label string, v decimal.Decimal) Metric {
	return Metric{Label: label, Value: v, Unit: UnitAmount}
}

func percent(label string, v decimal.Decimal) Metric {
	return Metric{Label: label, Value: v, Unit: UnitPercent}
}

func count(label string, n int) Metric {
	return Metric{Label: label, Value: decimal.NewFromInt(int64(n)), Unit: UnitCount}
}

func text(label, s string) Metric {
	return Metric{Label: label, Unit: UnitText, Text: s}
}

// Table is a tabular breakdown of a result.
type Table struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Result is implemented by every calculator output so formatters can render
// any of them.
type Result interface {
	Metrics() []Metric
	Table() *Table
}

// Report pairs a result with the calculator that produced it.
type Report struct {
	Calculator string `json:"calculator"`
	Result     Result `json:"result"`
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func itoa(n int) string { return strconv.Itoa(n) }

// Metrics implements Result.
func (r CalculationResult) Metrics() []Metric {
	m := []Metric{
		amount("Total invested", r.Summary.TotalContribution),
		amount("Total growth", r.Summary.TotalGrowth),
		amount("Final value", r.Summary.FinalValue),
	}
	if r.Summary.EffectiveRatePercent != nil {
		m = append(m, percent("Effective annual rate", *r.Summary.EffectiveRatePercent))
	}
	if r.Summary.FinalRealValue != nil {
		m = append(m, amount("Value in today's money", *r.Summary.FinalRealValue))
	}
	return m
}

// Table implements Result.
func (r CalculationResult) Table() *Table {
	t := &Table{Title: "Growth by period", Headers: []string{"Period", "Invested", "Growth", "Value"}}
	withReal := len(r.Series) > 0 && r.Series[0].RealValue != nil
	if withReal {
		t.Headers = append(t.Headers, "Real value")
	}
	for _, p := range r.Series {
		row := []string{itoa(p.Period), money(p.Principal), money(p.Growth), money(p.Value)}
		if withReal && p.RealValue != nil {
			row = append(row, money(*p.RealValue))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Metrics implements Result.
func (r SIPGoalResult) Metrics() []Metric {
	return []Metric{
		amount("Target amount", r.TargetAmount),
		amount("Monthly investment", r.MonthlyInvestment),
		amount("Total invested", r.TotalInvestment),
		amount("Expected growth", r.ExpectedGrowth),
	}
}

// Table implements Result.
func (r SIPGoalResult) Table() *Table { return r.Projection.Table() }

// Metrics implements Result.
func (r PPFResult) Metrics() []Metric {
	return append(r.CalculationResult.Metrics(),
		percent("Interest rate", r.AnnualRatePercent),
		count("Maturity year", r.MaturityYear),
	)
}

// Metrics implements Result.
func (r NPSResult) Metrics() []Metric {
	return append(r.CalculationResult.Metrics(),
		count("Years to retirement", r.YearsToRetirement),
		amount("Lumpsum withdrawal", r.LumpsumWithdrawal),
		amount("Annuity corpus", r.AnnuityCorpus),
		amount("Monthly pension", r.MonthlyPension),
	)
}

// Metrics implements Result.
func (r MutualFundResult) Metrics() []Metric {
	return append(r.CalculationResult.Metrics(),
		percent("Net return", r.NetRatePercent),
		amount("Value without expenses", r.GrossValue),
		amount("Expense drag", r.ExpenseDrag),
	)
}

// Metrics implements Result.
func (r EMIResult) Metrics() []Metric {
	return []Metric{
		amount("Loan amount", r.LoanAmount),
		count("Tenure (months)", r.TenureMonths),
		amount("Monthly EMI", r.MonthlyEMI),
		amount("Total interest", r.TotalInterest),
		amount("Total payment", r.TotalPayment),
	}
}

// Table implements Result.
func (r EMIResult) Table() *Table {
	t := &Table{Title: "Yearly amortization", Headers: []string{"Year", "Principal", "Interest", "Balance"}}
	for _, y := range r.Yearly {
		t.Rows = append(t.Rows, []string{itoa(y.Year), money(y.Principal), money(y.Interest), money(y.Balance)})
	}
	return t
}

// Metrics implements Result.
func (r LoanComparisonResult) Metrics() []Metric {
	return []Metric{
		text("Best option", r.Best),
		amount("Saving over costliest", r.Saving),
	}
}

// Table implements Result.
func (r LoanComparisonResult) Table() *Table {
	t := &Table{Title: "Loan options", Headers: []string{"Option", "EMI", "Interest", "Fee", "Total cost"}}
	for _, q := range r.Quotes {
		t.Rows = append(t.Rows, []string{q.Name, money(q.MonthlyEMI), money(q.TotalInterest), money(q.ProcessingFee), money(q.TotalCost)})
	}
	return t
}

// Metrics implements Result.
func (r TaxResult) Metrics() []Metric {
	return []Metric{
		text("Regime", r.Regime),
		amount("Gross income", r.GrossIncome),
		amount("Taxable income", r.TaxableIncome),
		amount("Tax on income", r.BaseTax),
		amount("Rebate", r.Rebate),
		amount("Surcharge", r.Surcharge),
		amount("Marginal relief", r.MarginalRelief),
		amount("Cess", r.Cess),
		amount("Total tax", r.TotalTax),
		percent("Effective rate", r.EffectiveRatePercent),
	}
}

// Table implements Result.
func (r TaxResult) Table() *Table {
	t := &Table{Title: "Slab breakdown", Headers: []string{"From", "To", "Rate", "Taxed amount", "Tax"}}
	for _, b := range r.Brackets {
		upper := "and above"
		if b.Upper != nil {
			upper = money(*b.Upper)
		}
		t.Rows = append(t.Rows, []string{money(b.Lower), upper, b.RatePercent.String() + "%", money(b.Taxable), money(b.Tax)})
	}
	return t
}

// Metrics implements Result.
func (r TaxComparison) Metrics() []Metric {
	return []Metric{
		amount("New regime tax", r.New.TotalTax),
		amount("Old regime tax", r.Old.TotalTax),
		text("Better regime", r.Better),
		amount("Saving", r.Saving),
	}
}

// Table implements Result.
func (r TaxComparison) Table() *Table {
	t := &Table{Title: "Regime comparison", Headers: []string{"", "New", "Old"}}
	line := func(label string, a, b decimal.Decimal) {
		t.Rows = append(t.Rows, []string{label, money(a), money(b)})
	}
	line("Taxable income", r.New.TaxableIncome, r.Old.TaxableIncome)
	line("Tax on income", r.New.BaseTax, r.Old.BaseTax)
	line("Rebate", r.New.Rebate, r.Old.Rebate)
	line("Surcharge", r.New.Surcharge, r.Old.Surcharge)
	line("Cess", r.New.Cess, r.Old.Cess)
	line("Total tax", r.New.TotalTax, r.Old.TotalTax)
	return t
}

// Metrics implements Result.
func (r HRAResult) Metrics() []Metric {
	return []Metric{
		amount("HRA received", r.HRAReceived),
		amount("Rent over basic", r.RentOverBasic),
		amount("Salary limit", r.SalaryLimit),
		amount("Exempt HRA", r.Exemption),
		amount("Taxable HRA", r.TaxableHRA),
	}
}

// Table implements Result.
func (r HRAResult) Table() *Table { return nil }

// Metrics implements Result.
func (r GratuityResult) Metrics() []Metric {
	eligible := "yes"
	if !r.Eligible {
		eligible = "no"
	}
	return []Metric{
		text("Eligible", eligible),
		count("Years counted", r.CountedYears),
		text("Formula", r.Formula),
		amount("Computed", r.Computed),
		amount("Gratuity payable", r.Gratuity),
	}
}

// Table implements Result.
func (r GratuityResult) Table() *Table { return nil }

// Metrics implements Result.
func (r GSTResult) Metrics() []Metric {
	return []Metric{
		amount("Base amount", r.BaseAmount),
		percent("GST rate", r.RatePercent),
		amount("CGST", r.CGST),
		amount("SGST", r.SGST),
		amount("IGST", r.IGST),
		amount("Total GST", r.TotalTax),
		amount("Total amount", r.TotalAmount),
	}
}

// Table implements Result.
func (r GSTResult) Table() *Table { return nil }

// Metrics implements Result.
func (r CAGRResult) Metrics() []Metric {
	return []Metric{
		percent("CAGR", r.CAGR.Mul(decimal.NewFromInt(100))),
		amount("Total return", r.TotalReturn),
		percent("Absolute return", r.AbsoluteReturn),
	}
}

// Table implements Result.
func (r CAGRResult) Table() *Table { return nil }

// Metrics implements Result.
func (r ROIResult) Metrics() []Metric {
	m := []Metric{
		amount("Gain", r.Gain),
		percent("ROI", r.ROIPercent),
	}
	if r.AnnualizedROIPercent != nil {
		m = append(m, percent("Annualised ROI", *r.AnnualizedROIPercent))
	}
	return m
}

// Table implements Result.
func (r ROIResult) Table() *Table { return nil }

// Metrics implements Result.
func (r InflationResult) Metrics() []Metric {
	return []Metric{
		amount("Future cost", r.FutureCost),
		amount("Purchasing power", r.PurchasingPower),
		amount("Increase", r.Increase),
	}
}

// Table implements Result.
func (r InflationResult) Table() *Table {
	t := &Table{Title: "Cost over time", Headers: []string{"Year", "Future cost", "Purchasing power"}}
	for _, p := range r.Series {
		t.Rows = append(t.Rows, []string{itoa(p.Year), money(p.FutureCost), money(p.PurchasingPower)})
	}
	return t
}

// String is used in log lines.
func (r Report) String() string {
	if r.Result == nil {
		return r.Calculator + " report (empty)"
	}
	return fmt.Sprintf("%s report (%d metrics)", r.Calculator, len(r.Result.Metrics()))
}
