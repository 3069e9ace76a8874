package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	require.NotNil(t, p)

	assert.Equal(t, "2025-26", p.FinancialYear)
	assert.True(t, p.CessPercent.Equal(decimal.NewFromInt(4)))

	newRegime, ok := p.Regime(domain.RegimeNew)
	require.True(t, ok)
	assert.Len(t, newRegime.Brackets, 7)
	assert.True(t, newRegime.StandardDeduction.Equal(decimal.NewFromInt(75000)))
	assert.False(t, newRegime.DeductionsAllowed)
	assert.True(t, newRegime.Rebate.Threshold.Equal(decimal.NewFromInt(1200000)))
	assert.True(t, newRegime.Rebate.MarginalRelief)
	assert.Nil(t, newRegime.Brackets[6].Upper)

	oldRegime, ok := p.Regime(domain.RegimeOld)
	require.True(t, ok)
	assert.Len(t, oldRegime.Surcharge, 4)
	assert.True(t, oldRegime.DeductionsAllowed)

	assert.True(t, p.Gratuity.Cap.Equal(decimal.NewFromInt(2000000)))
	assert.True(t, p.PPF.RatePercent.Equal(decimal.RequireFromString("7.1")))
	assert.Len(t, p.GST.Slabs, 7)
	assert.Equal(t, 60, p.NPS.DefaultRetirementAge)
}

func TestDefaultPolicy_ReturnsIndependentCopies(t *testing.T) {
	a := DefaultPolicy()
	b := DefaultPolicy()
	a.CessPercent = decimal.NewFromInt(10)
	assert.True(t, b.CessPercent.Equal(decimal.NewFromInt(4)))
}

func TestParsePolicy_RejectsBrokenBrackets(t *testing.T) {
	base, err := os.ReadFile(filepath.Join("data", "policy.yaml"))
	require.NoError(t, err)
	_, err = ParsePolicy(base)
	require.NoError(t, err)

	testCases := []struct {
		desc string
		yaml string
		want string
	}{
		{
			desc: "gap between brackets",
			yaml: `
cess_percent: 4
regimes:
  new:
    brackets:
      - { lower: 0, upper: 100, rate_percent: 0 }
      - { lower: 200, rate_percent: 10 }
  old:
    brackets:
      - { lower: 0, rate_percent: 0 }
`,
			want: "gap between bracket",
		},
		{
			desc: "bounded last bracket",
			yaml: `
regimes:
  new:
    brackets:
      - { lower: 0, upper: 100, rate_percent: 0 }
  old:
    brackets:
      - { lower: 0, rate_percent: 0 }
`,
			want: "last bracket must be unbounded",
		},
		{
			desc: "not starting at zero",
			yaml: `
regimes:
  new:
    brackets:
      - { lower: 10, rate_percent: 0 }
  old:
    brackets:
      - { lower: 0, rate_percent: 0 }
`,
			want: "first bracket must start at 0",
		},
		{
			desc: "missing old regime",
			yaml: `
regimes:
  new:
    brackets:
      - { lower: 0, rate_percent: 0 }
`,
			want: `missing "old" tax regime`,
		},
		{
			desc: "unknown key",
			yaml: "cess_percentage: 4\n",
			want: "field cess_percentage not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := ParsePolicy([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadPolicy_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	override := "ppf:\n  rate_percent: 7.5\n  min_deposit: 500\n  max_deposit: 150000\n  tenure_years: 15\n  extension_block: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.True(t, p.PPF.RatePercent.Equal(decimal.RequireFromString("7.5")))
	// untouched sections keep their defaults
	assert.True(t, p.CessPercent.Equal(decimal.NewFromInt(4)))
	_, ok := p.Regime(domain.RegimeOld)
	assert.True(t, ok)
}

func TestLoadPolicy_MergesFieldsAndReplacesLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	override := "hra:\n  metro_percent: 60\ngst:\n  slabs: [0, 5, 18]\n"
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.True(t, p.HRA.MetroPercent.Equal(decimal.NewFromInt(60)))
	// fields the file leaves out keep their defaults
	assert.True(t, p.HRA.NonMetroPercent.Equal(decimal.NewFromInt(40)))
	assert.True(t, p.HRA.RentExcessPercent.Equal(decimal.NewFromInt(10)))
	assert.True(t, p.GST.EnforceSlabs)
	// lists are replaced, not appended to
	require.Len(t, p.GST.Slabs, 3)
	assert.True(t, p.GST.Slabs[2].Equal(decimal.NewFromInt(18)))
}

func TestLoadPolicy_EmptyPathAndMissingFile(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read policy file")
}

func TestMarshalPolicy_RoundTrip(t *testing.T) {
	data, err := MarshalPolicy(DefaultPolicy())
	require.NoError(t, err)

	p, err := ParsePolicy(data)
	require.NoError(t, err)
	r, _ := p.Regime(domain.RegimeNew)
	assert.True(t, r.Rebate.Max.Equal(decimal.NewFromInt(60000)))
}
