package calculation

import (
	"fmt"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
	"github.com/shopspring/decimal"
)

// PlanKind selects the growth recurrence.
type PlanKind int

const (
	// PlanLumpsum compounds a single principal: V_k = P(1+r)^k.
	PlanLumpsum PlanKind = iota
	// PlanRecurring adds a fixed contribution at the start of every period.
	PlanRecurring
	// PlanStepUp is PlanRecurring with the contribution raised every
	// StepEvery periods.
	PlanStepUp
)

func (k PlanKind) String() string {
	switch k {
	case PlanLumpsum:
		return "lumpsum"
	case PlanRecurring:
		return "recurring"
	case PlanStepUp:
		return "step-up"
	default:
		return fmt.Sprintf("PlanKind(%d)", int(k))
	}
}

// GrowthPlan describes one projection. Rates are fractions per period
// except InflationRate, which is annual.
type GrowthPlan struct {
	Kind           PlanKind
	Principal      decimal.Decimal
	Contribution   decimal.Decimal
	PeriodicRate   decimal.Decimal
	Periods        int
	StepEvery      int
	StepUpRate     decimal.Decimal
	InflationRate  *decimal.Decimal
	PeriodsPerYear int
}

// Projection is the per-period walk of a plan. Points[0] is the starting
// state.
type Projection struct {
	Points []domain.PeriodPoint
}

// Final returns the last point.
func (p Projection) Final() domain.PeriodPoint {
	return p.Points[len(p.Points)-1]
}

// Every resamples the projection keeping period 0 and every step-th point,
// renumbered 1, 2, ... A trailing partial block keeps the final point.
func (p Projection) Every(step int) Projection {
	if step <= 1 || len(p.Points) == 0 {
		return p
	}
	out := []domain.PeriodPoint{p.Points[0]}
	last := len(p.Points) - 1
	for k := step; k <= last; k += step {
		pt := p.Points[k]
		pt.Period = k / step
		out = append(out, pt)
	}
	if last%step != 0 {
		pt := p.Points[last]
		pt.Period = last/step + 1
		out = append(out, pt)
	}
	return Projection{Points: out}
}

// Result converts the projection into the calculator result record.
func (p Projection) Result() domain.CalculationResult {
	final := p.Final()
	res := domain.CalculationResult{
		Summary: domain.Summary{
			TotalContribution: finmath.Round(final.Principal),
			TotalGrowth:       finmath.Round(final.Growth),
			FinalValue:        finmath.Round(final.Value),
		},
		Series: make([]domain.PeriodPoint, len(p.Points)),
	}
	for i, pt := range p.Points {
		out := domain.PeriodPoint{
			Period:    pt.Period,
			Principal: finmath.Round(pt.Principal),
			Growth:    finmath.Round(pt.Growth),
			Value:     finmath.Round(pt.Value),
		}
		if pt.RealValue != nil {
			rv := finmath.Round(*pt.RealValue)
			out.RealValue = &rv
		}
		res.Series[i] = out
	}
	if final.RealValue != nil {
		rv := finmath.Round(*final.RealValue)
		res.Summary.FinalRealValue = &rv
	}
	return res
}

func (g GrowthPlan) validate() error {
	if g.Periods < 0 {
		return invalid("periods", "must be non-negative, got %d", g.Periods)
	}
	if g.PeriodicRate.LessThanOrEqual(finmath.One.Neg()) {
		return invalid("rate", "must be greater than -100%%")
	}
	if g.Principal.IsNegative() {
		return invalid("principal", "must be non-negative")
	}
	if g.Contribution.IsNegative() {
		return invalid("contribution", "must be non-negative")
	}
	if g.Kind == PlanStepUp {
		if g.StepEvery <= 0 {
			return invalid("step_every", "must be positive for step-up plans")
		}
		if g.StepUpRate.IsNegative() {
			return invalid("step_up", "must be non-negative")
		}
	}
	if g.InflationRate != nil {
		if g.PeriodsPerYear <= 0 {
			return invalid("periods_per_year", "required for real-value projection")
		}
		if g.InflationRate.LessThanOrEqual(finmath.One.Neg()) {
			return invalid("inflation", "must be greater than -100%%")
		}
	}
	return nil
}

// Project walks the plan period by period. Contributions are made at the
// start of each period and compounded in the same period.
func Project(g GrowthPlan) (Projection, error) {
	if err := g.validate(); err != nil {
		return Projection{}, err
	}

	deflator, err := periodDeflator(g)
	if err != nil {
		return Projection{}, err
	}

	factor := finmath.One.Add(g.PeriodicRate)
	points := make([]domain.PeriodPoint, 0, g.Periods+1)
	start := domain.PeriodPoint{Period: 0, Principal: g.Principal, Value: g.Principal}
	if deflator != nil {
		rv := g.Principal
		start.RealValue = &rv
	}
	points = append(points, start)

	value := g.Principal
	invested := g.Principal
	contribution := g.Contribution
	for k := 1; k <= g.Periods; k++ {
		switch g.Kind {
		case PlanLumpsum:
			value = g.Principal.Mul(finmath.PowInt(factor, k))
		case PlanStepUp:
			if k > 1 && (k-1)%g.StepEvery == 0 {
				contribution = contribution.Mul(finmath.One.Add(g.StepUpRate)).Round(finmath.Precision)
			}
			fallthrough
		default:
			invested = invested.Add(contribution)
			value = value.Add(contribution).Mul(factor).Round(finmath.Precision)
		}
		pt := domain.PeriodPoint{
			Period:    k,
			Principal: invested,
			Growth:    value.Sub(invested),
			Value:     value,
		}
		if deflator != nil {
			rv := value.Div(finmath.PowInt(*deflator, k))
			pt.RealValue = &rv
		}
		points = append(points, pt)
	}
	return Projection{Points: points}, nil
}

// periodDeflator returns (1+i)^(1/periodsPerYear), or nil when no real
// series is requested.
func periodDeflator(g GrowthPlan) (*decimal.Decimal, error) {
	if g.InflationRate == nil {
		return nil, nil
	}
	annual := finmath.One.Add(*g.InflationRate)
	if g.PeriodsPerYear == 1 {
		return &annual, nil
	}
	d, err := finmath.PowFloat(annual, 1/float64(g.PeriodsPerYear))
	if err != nil {
		return nil, fmt.Errorf("inflation deflator: %w", err)
	}
	return &d, nil
}

// AnnuityFactor is ((1+r)^n - 1)/r, the future value of n end-of-period
// payments of 1. It is n when r is zero.
func AnnuityFactor(r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return decimal.NewFromInt(int64(n))
	}
	return finmath.GrowthFactor(r, n).Sub(finmath.One).Div(r)
}

// AnnuityDueFactor is AnnuityFactor for start-of-period payments.
func AnnuityDueFactor(r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return decimal.NewFromInt(int64(n))
	}
	return AnnuityFactor(r, n).Mul(finmath.One.Add(r))
}

// RequiredContribution returns the per-period contribution that grows to
// target in n periods at rate r.
func RequiredContribution(target, r decimal.Decimal, n int) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, invalid("periods", "must be positive, got %d", n)
	}
	if target.IsNegative() {
		return decimal.Zero, invalid("target", "must be non-negative")
	}
	if r.LessThanOrEqual(finmath.One.Neg()) {
		return decimal.Zero, invalid("rate", "must be greater than -100%%")
	}
	f := AnnuityDueFactor(r, n)
	if !f.IsPositive() {
		return decimal.Zero, invalid("rate", "yields no growth factor")
	}
	return target.Div(f), nil
}
