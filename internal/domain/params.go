package domain

import (
	"github.com/shopspring/decimal"
)

// InflationToggle is embedded by calculators that can report a real-value
// companion series.
type InflationToggle struct {
	AdjustForInflation bool            `yaml:"adjust_for_inflation,omitempty" json:"adjust_for_inflation,omitempty"`
	InflationPercent   decimal.Decimal `yaml:"inflation_percent,omitempty" json:"inflation_percent,omitempty"`
}

// SIPParams describes a monthly systematic investment plan, optionally with
// an annual step-up of the contribution.
type SIPParams struct {
	MonthlyInvestment decimal.Decimal `yaml:"monthly_investment" json:"monthly_investment"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years             int             `yaml:"years" json:"years"`
	StepUpPercent     decimal.Decimal `yaml:"step_up_percent,omitempty" json:"step_up_percent,omitempty"`
	InflationToggle   `yaml:",inline"`
}

// SIPGoalParams asks for the monthly investment needed to reach a target.
type SIPGoalParams struct {
	TargetAmount      decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years             int             `yaml:"years" json:"years"`
}

// LumpsumParams describes a one-time investment compounded annually.
type LumpsumParams struct {
	Principal         decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years             int             `yaml:"years" json:"years"`
	InflationToggle   `yaml:",inline"`
}

// FixedDepositParams describes a term deposit. CompoundingPerYear defaults
// to quarterly when zero.
type FixedDepositParams struct {
	Principal          decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRatePercent  decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years              int             `yaml:"years" json:"years"`
	CompoundingPerYear int             `yaml:"compounding_per_year,omitempty" json:"compounding_per_year,omitempty"`
	InflationToggle    `yaml:",inline"`
}

// RecurringDepositParams describes a monthly recurring deposit. Banks
// compound RDs quarterly; CompoundingPerYear defaults to 4.
type RecurringDepositParams struct {
	MonthlyDeposit     decimal.Decimal `yaml:"monthly_deposit" json:"monthly_deposit"`
	AnnualRatePercent  decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Months             int             `yaml:"months" json:"months"`
	CompoundingPerYear int             `yaml:"compounding_per_year,omitempty" json:"compounding_per_year,omitempty"`
}

// PPFParams describes a Public Provident Fund account. Nil rate and zero
// years fall back to the policy defaults.
type PPFParams struct {
	YearlyDeposit     decimal.Decimal  `yaml:"yearly_deposit" json:"yearly_deposit"`
	AnnualRatePercent *decimal.Decimal `yaml:"annual_rate_percent,omitempty" json:"annual_rate_percent,omitempty"`
	Years             int              `yaml:"years,omitempty" json:"years,omitempty"`
}

// NPSParams describes National Pension System contributions up to
// retirement and the annuity purchased at exit. BirthDate (2006-01-02) is
// an alternative to CurrentAge.
type NPSParams struct {
	MonthlyContribution   decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	CurrentAge            int             `yaml:"current_age,omitempty" json:"current_age,omitempty"`
	BirthDate             string          `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	RetirementAge         int             `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	ExpectedReturnPercent decimal.Decimal `yaml:"expected_return_percent" json:"expected_return_percent"`
	AnnualStepUpPercent   decimal.Decimal `yaml:"annual_step_up_percent,omitempty" json:"annual_step_up_percent,omitempty"`
	AnnuityPercent        decimal.Decimal `yaml:"annuity_percent,omitempty" json:"annuity_percent,omitempty"`
	AnnuityRatePercent    decimal.Decimal `yaml:"annuity_rate_percent" json:"annuity_rate_percent"`
}

// Investment modes for mutual fund projections.
const (
	ModeLumpsum = "lumpsum"
	ModeSIP     = "sip"
)

// MutualFundParams projects a fund investment net of its expense ratio.
type MutualFundParams struct {
	Mode                  string          `yaml:"mode" json:"mode"`
	Amount                decimal.Decimal `yaml:"amount" json:"amount"`
	ExpectedReturnPercent decimal.Decimal `yaml:"expected_return_percent" json:"expected_return_percent"`
	ExpenseRatioPercent   decimal.Decimal `yaml:"expense_ratio_percent,omitempty" json:"expense_ratio_percent,omitempty"`
	Years                 int             `yaml:"years" json:"years"`
	InflationToggle       `yaml:",inline"`
}

// CompoundInterestParams compounds a principal at an arbitrary frequency.
type CompoundInterestParams struct {
	Principal          decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRatePercent  decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years              int             `yaml:"years" json:"years"`
	CompoundingPerYear int             `yaml:"compounding_per_year,omitempty" json:"compounding_per_year,omitempty"`
	InflationToggle    `yaml:",inline"`
}

// EMIParams describes a loan repaid in equal monthly installments. The
// tenure is TenureYears*12 + TenureMonths.
type EMIParams struct {
	LoanAmount        decimal.Decimal `yaml:"loan_amount" json:"loan_amount"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TenureYears       int             `yaml:"tenure_years,omitempty" json:"tenure_years,omitempty"`
	TenureMonths      int             `yaml:"tenure_months,omitempty" json:"tenure_months,omitempty"`
}

// TotalMonths returns the loan tenure in months.
func (p EMIParams) TotalMonths() int {
	return p.TenureYears*12 + p.TenureMonths
}

// LoanOption is one offer in a loan comparison.
type LoanOption struct {
	Name                 string          `yaml:"name" json:"name"`
	Amount               decimal.Decimal `yaml:"amount" json:"amount"`
	AnnualRatePercent    decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TenureMonths         int             `yaml:"tenure_months" json:"tenure_months"`
	ProcessingFeePercent decimal.Decimal `yaml:"processing_fee_percent,omitempty" json:"processing_fee_percent,omitempty"`
}

// LoanComparisonParams lists the offers to compare.
type LoanComparisonParams struct {
	Options []LoanOption `yaml:"options" json:"options"`
}

// Tax regime selectors.
const (
	RegimeNew     = "new"
	RegimeOld     = "old"
	RegimeCompare = "compare"
)

// IncomeTaxParams holds the annual gross income and the regime to apply.
// Deductions (80C, 80D, ...) only count under regimes that allow them.
type IncomeTaxParams struct {
	GrossIncome decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	Regime      string          `yaml:"regime,omitempty" json:"regime,omitempty"`
	Deductions  decimal.Decimal `yaml:"deductions,omitempty" json:"deductions,omitempty"`
}

// HRAParams holds annual salary figures for the house rent allowance
// exemption.
type HRAParams struct {
	BasicSalary       decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	DearnessAllowance decimal.Decimal `yaml:"dearness_allowance,omitempty" json:"dearness_allowance,omitempty"`
	HRAReceived       decimal.Decimal `yaml:"hra_received" json:"hra_received"`
	RentPaid          decimal.Decimal `yaml:"rent_paid" json:"rent_paid"`
	Metro             bool            `yaml:"metro" json:"metro"`
}

// GratuityParams describes the service record used for gratuity. Service
// is given either as years/months or as joining/leaving dates.
type GratuityParams struct {
	LastDrawnSalary   decimal.Decimal `yaml:"last_drawn_salary" json:"last_drawn_salary"`
	YearsOfService    int             `yaml:"years_of_service,omitempty" json:"years_of_service,omitempty"`
	MonthsOfService   int             `yaml:"months_of_service,omitempty" json:"months_of_service,omitempty"`
	JoiningDate       string          `yaml:"joining_date,omitempty" json:"joining_date,omitempty"`
	LeavingDate       string          `yaml:"leaving_date,omitempty" json:"leaving_date,omitempty"`
	CoveredByAct      *bool           `yaml:"covered_by_act,omitempty" json:"covered_by_act,omitempty"`
	DeathOrDisability bool            `yaml:"death_or_disability,omitempty" json:"death_or_disability,omitempty"`
}

// IsCovered reports whether the employer falls under the Payment of
// Gratuity Act. Unset means covered.
func (p GratuityParams) IsCovered() bool {
	return p.CoveredByAct == nil || *p.CoveredByAct
}

// GSTParams describes a supply on which GST is levied.
type GSTParams struct {
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	RatePercent  decimal.Decimal `yaml:"rate_percent" json:"rate_percent"`
	InterState   bool            `yaml:"inter_state" json:"inter_state"`
	TaxInclusive bool            `yaml:"tax_inclusive,omitempty" json:"tax_inclusive,omitempty"`
}

// CAGRParams describes a start and end value over a (possibly fractional)
// number of years.
type CAGRParams struct {
	InitialValue decimal.Decimal `yaml:"initial_value" json:"initial_value"`
	FinalValue   decimal.Decimal `yaml:"final_value" json:"final_value"`
	Years        decimal.Decimal `yaml:"years" json:"years"`
}

// ROIParams describes an investment outcome. Years is optional; when set
// the annualised return is reported too.
type ROIParams struct {
	AmountInvested decimal.Decimal `yaml:"amount_invested" json:"amount_invested"`
	AmountReturned decimal.Decimal `yaml:"amount_returned" json:"amount_returned"`
	Years          decimal.Decimal `yaml:"years,omitempty" json:"years,omitempty"`
}

// InflationParams projects today's cost forward at an inflation rate.
type InflationParams struct {
	CurrentAmount    decimal.Decimal `yaml:"current_amount" json:"current_amount"`
	InflationPercent decimal.Decimal `yaml:"inflation_percent" json:"inflation_percent"`
	Years            int             `yaml:"years" json:"years"`
}
