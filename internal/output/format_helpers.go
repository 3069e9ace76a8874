package output

import (
	"strings"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatRupees formats an amount with the rupee sign and Indian digit
// grouping: the last three digits, then groups of two (₹12,34,567.89).
func FormatRupees(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	if len(whole) > 3 {
		head := whole[:len(whole)-3]
		if len(head)%2 == 1 {
			b.WriteString(head[:1])
			b.WriteByte(',')
			head = head[1:]
		}
		for i := 0; i < len(head); i += 2 {
			b.WriteString(head[i : i+2])
			b.WriteByte(',')
		}
		whole = whole[len(whole)-3:]
	}
	b.WriteString(whole)
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// displayMetric renders amounts in rupees and everything else as the
// metric itself displays.
func displayMetric(m domain.Metric) string {
	switch m.Unit {
	case domain.UnitAmount:
		return FormatRupees(m.Value)
	case domain.UnitPercent:
		return FormatPercentage(m.Value)
	}
	return m.Display()
}

var acronyms = map[string]bool{
	"cagr": true, "emi": true, "fd": true, "gst": true, "hra": true,
	"nps": true, "ppf": true, "rd": true, "roi": true, "sip": true,
}

// title turns a calculator name into a heading: "sip-goal" -> "SIP Goal".
func title(calculator string) string {
	words := strings.Split(calculator, "-")
	for i, w := range words {
		if acronyms[w] {
			words[i] = strings.ToUpper(w)
			continue
		}
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
