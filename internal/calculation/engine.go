package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
)

// Decoder fills a parameter struct from some request encoding (YAML node,
// JSON body, CLI flags).
type Decoder func(v any) error

type calculator struct {
	summary string
	run     func(e *Engine, decode Decoder) (domain.Result, error)
}

// bind adapts a typed calculator method to the registry signature.
func bind[P any, R domain.Result](fn func(e *Engine, p P) (R, error)) func(*Engine, Decoder) (domain.Result, error) {
	return func(e *Engine, decode Decoder) (domain.Result, error) {
		var p P
		if err := decode(&p); err != nil {
			return nil, &ValidationError{Field: "params", Reason: err.Error()}
		}
		r, err := fn(e, p)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// calculators maps each calculator name to its implementation.
var calculators = map[string]calculator{
	"sip":          {"Systematic investment plan with optional annual step-up", bind((*Engine).SIP)},
	"sip-goal":     {"Monthly investment needed to reach a target", bind((*Engine).SIPGoal)},
	"lumpsum":      {"One-time investment compounded annually", bind((*Engine).Lumpsum)},
	"fd":           {"Fixed deposit", bind((*Engine).FixedDeposit)},
	"rd":           {"Recurring deposit", bind((*Engine).RecurringDeposit)},
	"ppf":          {"Public Provident Fund", bind((*Engine).PPF)},
	"nps":          {"National Pension System corpus and pension", bind((*Engine).NPS)},
	"mutual-fund":  {"Mutual fund returns net of expense ratio", bind((*Engine).MutualFund)},
	"compound":     {"Compound interest at any frequency", bind((*Engine).CompoundInterest)},
	"emi":          {"Loan EMI and amortization schedule", bind((*Engine).EMI)},
	"loan-compare": {"Compare loan offers by total cost", bind((*Engine).CompareLoans)},
	"income-tax":   {"Income tax under the new or old regime", bind((*Engine).IncomeTax)},
	"hra":          {"House rent allowance exemption", bind((*Engine).HRA)},
	"gratuity":     {"Gratuity payable on leaving", bind((*Engine).Gratuity)},
	"gst":          {"GST with CGST/SGST/IGST split", bind((*Engine).GST)},
	"cagr":         {"Compound annual growth rate", bind((*Engine).CAGR)},
	"roi":          {"Return on investment", bind((*Engine).ROI)},
	"inflation":    {"Future cost and purchasing power", bind((*Engine).Inflation)},
}

// CalculatorInfo describes a registered calculator.
type CalculatorInfo struct {
	Name    string
	Summary string
}

// Engine dispatches calculation requests to the calculators. It holds only
// read-only policy and is safe for concurrent use.
type Engine struct {
	policy    *domain.Policy
	tax       *TaxEngine
	exemption *ExemptionCalculator
	gst       *GstSplitter
	logger    Logger
}

// NewEngine creates an engine over policy. A nil logger is replaced by
// NopLogger.
func NewEngine(policy *domain.Policy, logger Logger) *Engine {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Engine{
		policy:    policy,
		tax:       NewTaxEngine(policy),
		exemption: NewExemptionCalculator(policy),
		gst:       NewGstSplitter(policy),
		logger:    logger,
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = NopLogger{}
		return
	}
	e.logger = l
}

// Policy returns the policy tables the engine was built with.
func (e *Engine) Policy() *domain.Policy { return e.policy }

// Names lists the registered calculators in alphabetical order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(calculators))
	for name := range calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculators describes every registered calculator.
func (e *Engine) Calculators() []CalculatorInfo {
	infos := make([]CalculatorInfo, 0, len(calculators))
	for _, name := range e.Names() {
		infos = append(infos, CalculatorInfo{Name: name, Summary: calculators[name].summary})
	}
	return infos
}

// Run decodes parameters for the named calculator and runs it.
func (e *Engine) Run(ctx context.Context, name string, decode Decoder) (domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}
	c, ok := calculators[name]
	if !ok {
		return domain.Report{}, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}
	result, err := c.run(e, decode)
	if err != nil {
		e.logger.Debugf("%s: %v", name, err)
		return domain.Report{}, fmt.Errorf("%s: %w", name, err)
	}
	e.logger.Debugf("%s: calculated", name)
	return domain.Report{Calculator: name, Result: result}, nil
}

// IncomeTax computes tax under the requested regime, or both regimes when
// the regime is "compare".
func (e *Engine) IncomeTax(p domain.IncomeTaxParams) (domain.Result, error) {
	if p.Regime == domain.RegimeCompare {
		cmp, err := e.tax.CompareRegimes(p.GrossIncome, p.Deductions)
		if err != nil {
			return nil, err
		}
		return cmp, nil
	}
	res, err := e.tax.Compute(p.GrossIncome, p.Regime, p.Deductions)
	if err != nil {
		return nil, err
	}
	e.logger.Debugf("income-tax: %s", describeTax(res))
	return res, nil
}

// HRA computes the house rent allowance exemption.
func (e *Engine) HRA(p domain.HRAParams) (domain.HRAResult, error) { return e.exemption.HRA(p) }

// Gratuity computes the gratuity payable.
func (e *Engine) Gratuity(p domain.GratuityParams) (domain.GratuityResult, error) {
	return e.exemption.Gratuity(p)
}

// GST splits GST on a supply.
func (e *Engine) GST(p domain.GSTParams) (domain.GSTResult, error) {
	res, err := e.gst.Split(p)
	if err != nil {
		return res, err
	}
	if !e.policy.GST.EnforceSlabs && !finmath.IsOneOf(p.RatePercent, e.policy.GST.Slabs) {
		e.logger.Warnf("gst: %s%% is not a notified slab", p.RatePercent)
	}
	return res, nil
}

// CAGR computes the compound annual growth rate.
func (e *Engine) CAGR(p domain.CAGRParams) (domain.CAGRResult, error) { return CAGR(p) }

// ROI computes the return on investment.
func (e *Engine) ROI(p domain.ROIParams) (domain.ROIResult, error) { return ROI(p) }

// Inflation projects future cost and purchasing power.
func (e *Engine) Inflation(p domain.InflationParams) (domain.InflationResult, error) {
	return CalculateInflation(p)
}
