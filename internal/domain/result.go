package domain

import (
	"github.com/shopspring/decimal"
)

// PeriodPoint is the state of a projection at the end of one period.
// Period 0 is the starting state.
type PeriodPoint struct {
	Period    int              `json:"period"`
	Principal decimal.Decimal  `json:"principal"`
	Growth    decimal.Decimal  `json:"growth"`
	Value     decimal.Decimal  `json:"value"`
	RealValue *decimal.Decimal `json:"real_value,omitempty"`
}

// Summary holds the headline numbers of a projection.
type Summary struct {
	TotalContribution    decimal.Decimal  `json:"total_contribution"`
	TotalGrowth          decimal.Decimal  `json:"total_growth"`
	FinalValue           decimal.Decimal  `json:"final_value"`
	EffectiveRatePercent *decimal.Decimal `json:"effective_rate_percent,omitempty"`
	FinalRealValue       *decimal.Decimal `json:"final_real_value,omitempty"`
}

// CalculationResult is the output of every growth-based calculator.
type CalculationResult struct {
	Summary Summary       `json:"summary"`
	Series  []PeriodPoint `json:"series"`
}

// SIPGoalResult is the monthly investment required to reach a target.
type SIPGoalResult struct {
	TargetAmount      decimal.Decimal   `json:"target_amount"`
	MonthlyInvestment decimal.Decimal   `json:"monthly_investment"`
	TotalInvestment   decimal.Decimal   `json:"total_investment"`
	ExpectedGrowth    decimal.Decimal   `json:"expected_growth"`
	Projection        CalculationResult `json:"projection"`
}

// PPFResult adds the PPF maturity details to the projection.
type PPFResult struct {
	CalculationResult
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	MaturityYear      int             `json:"maturity_year"`
}

// NPSResult splits the retirement corpus into lumpsum and annuity.
type NPSResult struct {
	CalculationResult
	YearsToRetirement int             `json:"years_to_retirement"`
	LumpsumWithdrawal decimal.Decimal `json:"lumpsum_withdrawal"`
	AnnuityCorpus     decimal.Decimal `json:"annuity_corpus"`
	MonthlyPension    decimal.Decimal `json:"monthly_pension"`
}

// MutualFundResult reports the projection at the net rate together with
// what the expense ratio cost.
type MutualFundResult struct {
	CalculationResult
	NetRatePercent decimal.Decimal `json:"net_rate_percent"`
	GrossValue     decimal.Decimal `json:"gross_value"`
	ExpenseDrag    decimal.Decimal `json:"expense_drag"`
}

// AmortizationRow is one installment of a loan schedule.
type AmortizationRow struct {
	Period      int             `json:"period"`
	Installment decimal.Decimal `json:"installment"`
	Principal   decimal.Decimal `json:"principal"`
	Interest    decimal.Decimal `json:"interest"`
	Balance     decimal.Decimal `json:"balance"`
}

// AmortizationYear aggregates twelve rows (fewer for the last year).
type AmortizationYear struct {
	Year      int             `json:"year"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// EMIResult is a loan's installment and full schedule.
type EMIResult struct {
	LoanAmount    decimal.Decimal    `json:"loan_amount"`
	TenureMonths  int                `json:"tenure_months"`
	MonthlyEMI    decimal.Decimal    `json:"monthly_emi"`
	TotalInterest decimal.Decimal    `json:"total_interest"`
	TotalPayment  decimal.Decimal    `json:"total_payment"`
	Schedule      []AmortizationRow  `json:"schedule"`
	Yearly        []AmortizationYear `json:"yearly"`
}

// LoanQuote is the cost of one compared loan option.
type LoanQuote struct {
	Name          string          `json:"name"`
	MonthlyEMI    decimal.Decimal `json:"monthly_emi"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// LoanComparisonResult ranks loan offers by total cost.
type LoanComparisonResult struct {
	Quotes []LoanQuote     `json:"quotes"`
	Best   string          `json:"best"`
	Saving decimal.Decimal `json:"saving"`
}

// BracketTax is the tax collected within one bracket.
type BracketTax struct {
	Lower       decimal.Decimal  `json:"lower"`
	Upper       *decimal.Decimal `json:"upper,omitempty"`
	RatePercent decimal.Decimal  `json:"rate_percent"`
	Taxable     decimal.Decimal  `json:"taxable"`
	Tax         decimal.Decimal  `json:"tax"`
}

// TaxResult is the full computation for one regime.
type TaxResult struct {
	Regime               string          `json:"regime"`
	GrossIncome          decimal.Decimal `json:"gross_income"`
	StandardDeduction    decimal.Decimal `json:"standard_deduction"`
	Deductions           decimal.Decimal `json:"deductions"`
	TaxableIncome        decimal.Decimal `json:"taxable_income"`
	Brackets             []BracketTax    `json:"brackets"`
	BaseTax              decimal.Decimal `json:"base_tax"`
	Rebate               decimal.Decimal `json:"rebate"`
	TaxAfterRebate       decimal.Decimal `json:"tax_after_rebate"`
	Surcharge            decimal.Decimal `json:"surcharge"`
	MarginalRelief       decimal.Decimal `json:"marginal_relief"`
	Cess                 decimal.Decimal `json:"cess"`
	TotalTax             decimal.Decimal `json:"total_tax"`
	EffectiveRatePercent decimal.Decimal `json:"effective_rate_percent"`
}

// TaxComparison holds both regimes for the same income.
type TaxComparison struct {
	New    TaxResult       `json:"new"`
	Old    TaxResult       `json:"old"`
	Better string          `json:"better"`
	Saving decimal.Decimal `json:"saving"`
}

// HRAResult lists the three HRA rule amounts and the exemption.
type HRAResult struct {
	HRAReceived   decimal.Decimal `json:"hra_received"`
	RentOverBasic decimal.Decimal `json:"rent_over_basic"`
	SalaryLimit   decimal.Decimal `json:"salary_limit"`
	Exemption     decimal.Decimal `json:"exemption"`
	TaxableHRA    decimal.Decimal `json:"taxable_hra"`
}

// GratuityResult is the gratuity payable for a service record.
type GratuityResult struct {
	CountedYears int             `json:"counted_years"`
	Eligible     bool            `json:"eligible"`
	Formula      string          `json:"formula"`
	Computed     decimal.Decimal `json:"computed"`
	Gratuity     decimal.Decimal `json:"gratuity"`
	Capped       bool            `json:"capped"`
}

// GSTResult splits GST into its central, state and integrated parts.
type GSTResult struct {
	BaseAmount  decimal.Decimal `json:"base_amount"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
	TotalTax    decimal.Decimal `json:"total_tax"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CAGRResult holds the compound annual growth rate as a fraction,
// the absolute gain and the gain in percent.
type CAGRResult struct {
	CAGR           decimal.Decimal `json:"cagr"`
	TotalReturn    decimal.Decimal `json:"total_return"`
	AbsoluteReturn decimal.Decimal `json:"absolute_return"`
}

// ROIResult is the return on an investment.
type ROIResult struct {
	Gain                 decimal.Decimal  `json:"gain"`
	ROIPercent           decimal.Decimal  `json:"roi_percent"`
	AnnualizedROIPercent *decimal.Decimal `json:"annualized_roi_percent,omitempty"`
}

// InflationPoint is the cost of today's basket after Year years.
type InflationPoint struct {
	Year            int             `json:"year"`
	FutureCost      decimal.Decimal `json:"future_cost"`
	PurchasingPower decimal.Decimal `json:"purchasing_power"`
}

// InflationResult projects a cost and the erosion of money's value.
type InflationResult struct {
	FutureCost      decimal.Decimal  `json:"future_cost"`
	PurchasingPower decimal.Decimal  `json:"purchasing_power"`
	Increase        decimal.Decimal  `json:"increase"`
	Series          []InflationPoint `json:"series"`
}
