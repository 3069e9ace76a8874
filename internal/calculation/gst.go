package calculation

import (
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/pkg/finmath"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// GstSplitter levies GST and splits it between the centre and the states.
type GstSplitter struct {
	policy domain.GSTPolicy
}

// NewGstSplitter creates a splitter using the slabs of policy.
func NewGstSplitter(policy *domain.Policy) *GstSplitter {
	return &GstSplitter{policy: policy.GST}
}

// Split computes GST on the supply. Intra-state supplies split the tax
// equally into CGST and SGST; inter-state supplies carry IGST only. In
// tax-inclusive mode the amount already contains GST and the base is
// backed out of it.
func (gs *GstSplitter) Split(p domain.GSTParams) (domain.GSTResult, error) {
	if p.Amount.IsNegative() {
		return domain.GSTResult{}, invalid("amount", "must be non-negative")
	}
	if p.RatePercent.IsNegative() {
		return domain.GSTResult{}, invalid("rate_percent", "must be non-negative")
	}
	if gs.policy.EnforceSlabs && !finmath.IsOneOf(p.RatePercent, gs.policy.Slabs) {
		return domain.GSTResult{}, invalid("rate_percent", "%s%% is not a notified GST slab", p.RatePercent)
	}

	base := finmath.Round(p.Amount)
	tax := finmath.Round(finmath.PercentOf(base, p.RatePercent))
	if p.TaxInclusive {
		base = finmath.Round(p.Amount.Mul(finmath.Hundred).Div(finmath.Hundred.Add(p.RatePercent)))
		tax = finmath.Round(p.Amount).Sub(base)
	}

	res := domain.GSTResult{
		BaseAmount:  base,
		RatePercent: p.RatePercent,
		TotalTax:    tax,
		TotalAmount: base.Add(tax),
	}
	if p.InterState {
		res.IGST = tax
	} else {
		res.CGST = finmath.Round(tax.Div(two))
		res.SGST = tax.Sub(res.CGST)
	}
	return res, nil
}
