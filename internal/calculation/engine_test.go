package calculation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/config"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func yamlDecoder(doc string) Decoder {
	return func(v any) error {
		dec := yaml.NewDecoder(strings.NewReader(doc))
		dec.KnownFields(true)
		return dec.Decode(v)
	}
}

func TestEngine_Run(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name       string
		calculator string
		params     string
		check      func(t *testing.T, r domain.Result)
	}{
		{
			name:       "lumpsum",
			calculator: "lumpsum",
			params:     "principal: 100000\nannual_rate_percent: 12\nyears: 10\n",
			check: func(t *testing.T, r domain.Result) {
				res, ok := r.(domain.CalculationResult)
				require.True(t, ok)
				assertAmount(t, "310584.82", res.Summary.FinalValue)
			},
		},
		{
			name:       "income tax compare",
			calculator: "income-tax",
			params:     "gross_income: 1575000\nregime: compare\n",
			check: func(t *testing.T, r domain.Result) {
				res, ok := r.(domain.TaxComparison)
				require.True(t, ok)
				assertAmount(t, "109200.00", res.New.TotalTax)
			},
		},
		{
			name:       "gst",
			calculator: "gst",
			params:     "amount: 10000\nrate_percent: 18\ninter_state: true\n",
			check: func(t *testing.T, r domain.Result) {
				res, ok := r.(domain.GSTResult)
				require.True(t, ok)
				assertAmount(t, "1800.00", res.IGST)
			},
		},
		{
			name:       "gratuity with act coverage off",
			calculator: "gratuity",
			params:     "last_drawn_salary: 50000\nyears_of_service: 10\ncovered_by_act: false\n",
			check: func(t *testing.T, r domain.Result) {
				res, ok := r.(domain.GratuityResult)
				require.True(t, ok)
				assertAmount(t, "250000.00", res.Gratuity)
			},
		},
		{
			name:       "sip with inflation inline",
			calculator: "sip",
			params:     "monthly_investment: 5000\nannual_rate_percent: 12\nyears: 10\nadjust_for_inflation: true\ninflation_percent: 6\n",
			check: func(t *testing.T, r domain.Result) {
				res, ok := r.(domain.CalculationResult)
				require.True(t, ok)
				assert.NotNil(t, res.Summary.FinalRealValue)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := e.Run(context.Background(), tt.calculator, yamlDecoder(tt.params))
			require.NoError(t, err)
			assert.Equal(t, tt.calculator, report.Calculator)
			assert.NotEmpty(t, report.Result.Metrics())
			tt.check(t, report.Result)
		})
	}
}

func TestEngine_RunJSONDecoder(t *testing.T) {
	e := newTestEngine()
	body := `{"initial_value": "100000", "final_value": 200000, "years": 5}`
	report, err := e.Run(context.Background(), "cagr", func(v any) error {
		return json.Unmarshal([]byte(body), v)
	})
	require.NoError(t, err)
	res := report.Result.(domain.CAGRResult)
	assert.Equal(t, "0.148698", res.CAGR.StringFixed(6))
}

func TestEngine_RunErrors(t *testing.T) {
	e := newTestEngine()

	_, err := e.Run(context.Background(), "bitcoin", yamlDecoder("{}"))
	require.ErrorIs(t, err, ErrUnknownCalculator)
	assert.Contains(t, err.Error(), `"bitcoin"`)

	_, err = e.Run(context.Background(), "emi", yamlDecoder("loan_amount: 1000\nrate: 8\n"))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "emi: params")

	_, err = e.Run(context.Background(), "emi", yamlDecoder("loan_amount: 1000\nannual_rate_percent: 8\n"))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "emi: tenure")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Run(ctx, "emi", yamlDecoder("loan_amount: 1000\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Names(t *testing.T) {
	e := newTestEngine()
	names := e.Names()
	assert.Len(t, names, len(calculators))
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "cagr")
	assert.Contains(t, names, "loan-compare")

	infos := e.Calculators()
	require.Len(t, infos, len(names))
	for _, info := range infos {
		assert.NotEmpty(t, info.Summary, info.Name)
	}
}

type recordingLogger struct {
	NopLogger
	debugs []string
	warns  []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debugs = append(l.debugs, format)
}

func TestEngine_SetLogger(t *testing.T) {
	e := newTestEngine()
	rec := &recordingLogger{}
	e.SetLogger(rec)

	_, err := e.Run(context.Background(), "roi", yamlDecoder("amount_invested: 100\namount_returned: 120\n"))
	require.NoError(t, err)
	assert.Len(t, rec.debugs, 1)

	e.SetLogger(nil)
	_, err = e.Run(context.Background(), "roi", yamlDecoder("amount_invested: 100\namount_returned: 120\n"))
	require.NoError(t, err)
	assert.Len(t, rec.debugs, 1)
}

func TestEngine_WarnsOnUnnotifiedGSTRate(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.GST.EnforceSlabs = false
	rec := &recordingLogger{}
	e := NewEngine(policy, rec)

	_, err := e.GST(domain.GSTParams{Amount: dec("1000"), RatePercent: dec("18")})
	require.NoError(t, err)
	assert.Empty(t, rec.warns)

	res, err := e.GST(domain.GSTParams{Amount: dec("1000"), RatePercent: dec("17")})
	require.NoError(t, err)
	assertAmount(t, "170.00", res.TotalTax)
	require.Len(t, rec.warns, 1)
	assert.Contains(t, rec.warns[0], "17% is not a notified slab")
}
