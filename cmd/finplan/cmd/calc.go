package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/calculation"
	"github.com/spf13/cobra"
)

type flagKind int

const (
	decimalFlag flagKind = iota
	intFlag
	boolFlag
	stringFlag
)

// paramFlag maps a command line flag onto a calculator parameter.
type paramFlag struct {
	name     string
	key      string
	usage    string
	kind     flagKind
	required bool
	// implies is a boolean parameter switched on whenever the flag is set.
	implies string
}

type calculatorSpec struct {
	use        string
	calculator string
	short      string
	example    string
	flags      []paramFlag
}

var (
	rateFlag      = paramFlag{name: "rate", key: "annual_rate_percent", usage: "annual interest rate in percent", required: true}
	inflationFlag = paramFlag{name: "inflation", key: "inflation_percent", usage: "report values in today's money at this inflation percent", implies: "adjust_for_inflation"}
	compoundFlag  = paramFlag{name: "compounding", key: "compounding_per_year", usage: "compounding periods per year (1, 2, 4, 12, 52, 365)", kind: intFlag}
)

var calculatorCommands = []calculatorSpec{
	{
		use: "sip", calculator: "sip",
		short:   "Systematic investment plan",
		example: "finplan sip --amount 5000 --rate 12 --years 10 --step-up 10",
		flags: []paramFlag{
			{name: "amount", key: "monthly_investment", usage: "monthly investment", required: true},
			rateFlag,
			{name: "years", key: "years", usage: "investment horizon in years", kind: intFlag, required: true},
			{name: "step-up", key: "step_up_percent", usage: "yearly increase of the instalment in percent"},
			inflationFlag,
		},
	},
	{
		use: "sip-goal", calculator: "sip-goal",
		short:   "Monthly SIP needed to reach a target",
		example: "finplan sip-goal --target 1000000 --rate 12 --years 10",
		flags: []paramFlag{
			{name: "target", key: "target_amount", usage: "target corpus", required: true},
			rateFlag,
			{name: "years", key: "years", usage: "years to the goal", kind: intFlag, required: true},
		},
	},
	{
		use: "lumpsum", calculator: "lumpsum",
		short: "One-time investment",
		flags: []paramFlag{
			{name: "principal", key: "principal", usage: "amount invested", required: true},
			rateFlag,
			{name: "years", key: "years", usage: "investment horizon in years", kind: intFlag, required: true},
			inflationFlag,
		},
	},
	{
		use: "fd", calculator: "fd",
		short:   "Fixed deposit maturity",
		example: "finplan fd --principal 100000 --rate 7 --years 5",
		flags: []paramFlag{
			{name: "principal", key: "principal", usage: "deposit amount", required: true},
			rateFlag,
			{name: "years", key: "years", usage: "tenure in years", kind: intFlag, required: true},
			compoundFlag,
			inflationFlag,
		},
	},
	{
		use: "rd", calculator: "rd",
		short: "Recurring deposit maturity",
		flags: []paramFlag{
			{name: "deposit", key: "monthly_deposit", usage: "monthly deposit", required: true},
			rateFlag,
			{name: "months", key: "months", usage: "tenure in months", kind: intFlag, required: true},
			compoundFlag,
		},
	},
	{
		use: "ppf", calculator: "ppf",
		short: "Public Provident Fund maturity",
		flags: []paramFlag{
			{name: "deposit", key: "yearly_deposit", usage: "yearly deposit", required: true},
			{name: "rate", key: "annual_rate_percent", usage: "interest rate in percent (default: policy rate)"},
			{name: "years", key: "years", usage: "years including 5-year extensions (default: 15)", kind: intFlag},
		},
	},
	{
		use: "nps", calculator: "nps",
		short:   "National Pension System corpus and pension",
		example: "finplan nps --contribution 5000 --age 30 --return 10 --annuity-rate 6",
		flags: []paramFlag{
			{name: "contribution", key: "monthly_contribution", usage: "monthly contribution", required: true},
			{name: "age", key: "current_age", usage: "current age", kind: intFlag},
			{name: "birth-date", key: "birth_date", usage: "date of birth (YYYY-MM-DD), instead of --age", kind: stringFlag},
			{name: "retirement-age", key: "retirement_age", usage: "retirement age (default: 60)", kind: intFlag},
			{name: "return", key: "expected_return_percent", usage: "expected annual return in percent", required: true},
			{name: "step-up", key: "annual_step_up_percent", usage: "yearly increase of the contribution in percent"},
			{name: "annuity", key: "annuity_percent", usage: "share of the corpus used to buy an annuity (default: 40)"},
			{name: "annuity-rate", key: "annuity_rate_percent", usage: "annuity rate in percent"},
		},
	},
	{
		use: "mutual-fund", calculator: "mutual-fund",
		short: "Mutual fund returns net of expense ratio",
		flags: []paramFlag{
			{name: "mode", key: "mode", usage: "lumpsum or sip", kind: stringFlag, required: true},
			{name: "amount", key: "amount", usage: "investment (monthly for sip)", required: true},
			{name: "return", key: "expected_return_percent", usage: "expected annual return in percent", required: true},
			{name: "expense", key: "expense_ratio_percent", usage: "expense ratio in percent"},
			{name: "years", key: "years", usage: "investment horizon in years", kind: intFlag, required: true},
			inflationFlag,
		},
	},
	{
		use: "compound", calculator: "compound",
		short: "Compound interest",
		flags: []paramFlag{
			{name: "principal", key: "principal", usage: "principal", required: true},
			rateFlag,
			{name: "years", key: "years", usage: "years", kind: intFlag, required: true},
			compoundFlag,
			inflationFlag,
		},
	},
	{
		use: "emi", calculator: "emi",
		short:   "Loan EMI and amortization",
		example: "finplan emi --amount 1000000 --rate 8.5 --years 20",
		flags: []paramFlag{
			{name: "amount", key: "loan_amount", usage: "loan amount", required: true},
			rateFlag,
			{name: "years", key: "tenure_years", usage: "tenure in years", kind: intFlag},
			{name: "months", key: "tenure_months", usage: "tenure in months (added to --years)", kind: intFlag},
		},
	},
	{
		use: "tax", calculator: "income-tax",
		short:   "Income tax under the new or old regime",
		example: "finplan tax --income 1575000 --regime compare --deductions 150000",
		flags: []paramFlag{
			{name: "income", key: "gross_income", usage: "gross annual income", required: true},
			{name: "regime", key: "regime", usage: "new, old or compare", kind: stringFlag},
			{name: "deductions", key: "deductions", usage: "chapter VI-A deductions (old regime)"},
		},
	},
	{
		use: "hra", calculator: "hra",
		short: "HRA exemption",
		flags: []paramFlag{
			{name: "basic", key: "basic_salary", usage: "annual basic salary", required: true},
			{name: "da", key: "dearness_allowance", usage: "annual dearness allowance"},
			{name: "hra", key: "hra_received", usage: "annual HRA received", required: true},
			{name: "rent", key: "rent_paid", usage: "annual rent paid", required: true},
			{name: "metro", key: "metro", usage: "living in a metro city", kind: boolFlag},
		},
	},
	{
		use: "gratuity", calculator: "gratuity",
		short:   "Gratuity payable",
		example: "finplan gratuity --salary 50000 --joined 2019-03-15 --left 2024-10-20",
		flags: []paramFlag{
			{name: "salary", key: "last_drawn_salary", usage: "last drawn monthly basic plus DA", required: true},
			{name: "years", key: "years_of_service", usage: "completed years of service", kind: intFlag},
			{name: "months", key: "months_of_service", usage: "months beyond the completed years", kind: intFlag},
			{name: "joined", key: "joining_date", usage: "joining date (YYYY-MM-DD)", kind: stringFlag},
			{name: "left", key: "leaving_date", usage: "leaving date (YYYY-MM-DD)", kind: stringFlag},
			{name: "covered", key: "covered_by_act", usage: "employer is covered by the Payment of Gratuity Act", kind: boolFlag},
			{name: "death-or-disability", key: "death_or_disability", usage: "leaving on death or disablement", kind: boolFlag},
		},
	},
	{
		use: "gst", calculator: "gst",
		short:   "GST with CGST/SGST/IGST split",
		example: "finplan gst --amount 10000 --rate 18 --inter-state",
		flags: []paramFlag{
			{name: "amount", key: "amount", usage: "taxable value (or gross with --inclusive)", required: true},
			{name: "rate", key: "rate_percent", usage: "GST rate in percent", required: true},
			{name: "inter-state", key: "inter_state", usage: "inter-state supply (IGST)", kind: boolFlag},
			{name: "inclusive", key: "tax_inclusive", usage: "amount already includes GST", kind: boolFlag},
		},
	},
	{
		use: "cagr", calculator: "cagr",
		short:   "Compound annual growth rate",
		example: "finplan cagr --initial 100000 --final 200000 --years 5",
		flags: []paramFlag{
			{name: "initial", key: "initial_value", usage: "starting value", required: true},
			{name: "final", key: "final_value", usage: "ending value", required: true},
			{name: "years", key: "years", usage: "years between the values (may be fractional)", required: true},
		},
	},
	{
		use: "roi", calculator: "roi",
		short: "Return on investment",
		flags: []paramFlag{
			{name: "invested", key: "amount_invested", usage: "amount invested", required: true},
			{name: "returned", key: "amount_returned", usage: "amount returned", required: true},
			{name: "years", key: "years", usage: "holding period in years, for the annualised return"},
		},
	},
	{
		use: "inflation", calculator: "inflation",
		short: "Future cost and purchasing power",
		flags: []paramFlag{
			{name: "amount", key: "current_amount", usage: "today's amount", required: true},
			{name: "rate", key: "inflation_percent", usage: "inflation in percent", required: true},
			{name: "years", key: "years", usage: "years ahead", kind: intFlag, required: true},
		},
	},
}

func (c *cli) newCalculatorCmd(spec calculatorSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.use,
		Short:   spec.short,
		Example: spec.example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := collectParams(cmd, spec.flags)
			if err != nil {
				return err
			}
			report, err := c.engine.Run(cmd.Context(), spec.calculator, jsonDecoder(params))
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), report)
		},
	}
	for _, f := range spec.flags {
		switch f.kind {
		case intFlag:
			cmd.Flags().Int(f.name, 0, f.usage)
		case boolFlag:
			cmd.Flags().Bool(f.name, false, f.usage)
		default:
			cmd.Flags().String(f.name, "", f.usage)
		}
		if f.required {
			_ = cmd.MarkFlagRequired(f.name)
		}
	}
	return cmd
}

// collectParams reads the flags the user set into a parameter map keyed by
// parameter name. Unset flags are left out so calculator defaults apply.
func collectParams(cmd *cobra.Command, flags []paramFlag) (map[string]any, error) {
	params := make(map[string]any)
	for _, f := range flags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		var (
			v   any
			err error
		)
		switch f.kind {
		case intFlag:
			v, err = cmd.Flags().GetInt(f.name)
		case boolFlag:
			v, err = cmd.Flags().GetBool(f.name)
		default:
			v, err = cmd.Flags().GetString(f.name)
		}
		if err != nil {
			return nil, err
		}
		params[f.key] = v
		if f.implies != "" {
			params[f.implies] = true
		}
	}
	return params, nil
}

// jsonDecoder decodes a parameter map into a calculator's parameter struct.
// Decimal parameters travel as strings and so keep their exact value.
func jsonDecoder(params any) calculation.Decoder {
	return func(v any) error {
		data, err := json.Marshal(params)
		if err != nil {
			return err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
}

// optionKeys maps the keys of a --option value onto loan option fields.
var optionKeys = map[string]struct {
	key  string
	kind flagKind
}{
	"name":   {"name", stringFlag},
	"amount": {"amount", decimalFlag},
	"rate":   {"annual_rate_percent", decimalFlag},
	"months": {"tenure_months", intFlag},
	"fee":    {"processing_fee_percent", decimalFlag},
}

// parseLoanOption parses "name=SBI,amount=1000000,rate=8.5,months=240,fee=0.5".
func parseLoanOption(s string) (map[string]any, error) {
	opt := make(map[string]any)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("option %q: expected key=value, got %q", s, pair)
		}
		field, known := optionKeys[k]
		if !known {
			return nil, fmt.Errorf("option %q: unknown key %q (use name, amount, rate, months, fee)", s, k)
		}
		if field.kind == intFlag {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("option %q: %s must be a whole number", s, k)
			}
			opt[field.key] = n
			continue
		}
		opt[field.key] = v
	}
	return opt, nil
}

func (c *cli) newLoanCompareCmd() *cobra.Command {
	var options []string
	cmd := &cobra.Command{
		Use:   "loan-compare",
		Short: "Compare loan offers by total cost",
		Example: `finplan loan-compare \
  --option name=SBI,amount=1000000,rate=8.5,months=240,fee=0.5 \
  --option name=HDFC,amount=1000000,rate=8.75,months=240`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]map[string]any, 0, len(options))
			for _, s := range options {
				opt, err := parseLoanOption(s)
				if err != nil {
					return err
				}
				parsed = append(parsed, opt)
			}
			report, err := c.engine.Run(cmd.Context(), "loan-compare", jsonDecoder(map[string]any{"options": parsed}))
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringArrayVar(&options, "option", nil, "loan offer as name=,amount=,rate=,months=,fee= (repeat for each offer)")
	_ = cmd.MarkFlagRequired("option")
	return cmd
}
