package calculation

import (
	"testing"
	"time"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_SIP(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		params    domain.SIPParams
		wantFinal string
		wantPaid  string
	}{
		{
			name:      "flat",
			params:    domain.SIPParams{MonthlyInvestment: dec("5000"), AnnualRatePercent: dec("12"), Years: 10},
			wantFinal: "1161695.38",
			wantPaid:  "600000.00",
		},
		{
			name:      "annual step-up",
			params:    domain.SIPParams{MonthlyInvestment: dec("5000"), AnnualRatePercent: dec("12"), Years: 10, StepUpPercent: dec("10")},
			wantFinal: "1687163.13",
			wantPaid:  "956245.48",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.SIP(tt.params)
			require.NoError(t, err)
			assertAmount(t, tt.wantFinal, res.Summary.FinalValue)
			assertAmount(t, tt.wantPaid, res.Summary.TotalContribution)
			require.Len(t, res.Series, 11, "one point per year plus the start")
			assert.Equal(t, 10, res.Series[10].Period)
			assert.True(t, res.Series[10].Value.Equal(res.Summary.FinalValue))
			assert.Nil(t, res.Summary.FinalRealValue)
		})
	}
}

func TestEngine_SIPWithInflation(t *testing.T) {
	e := newTestEngine()
	res, err := e.SIP(domain.SIPParams{
		MonthlyInvestment: dec("5000"),
		AnnualRatePercent: dec("12"),
		Years:             10,
		InflationToggle:   domain.InflationToggle{AdjustForInflation: true, InflationPercent: dec("6")},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Summary.FinalRealValue)
	assert.InDelta(t, 648684.63, res.Summary.FinalRealValue.InexactFloat64(), 0.02)
	assert.True(t, res.Summary.FinalRealValue.LessThan(res.Summary.FinalValue))
}

func TestEngine_SIPGoal(t *testing.T) {
	e := newTestEngine()
	res, err := e.SIPGoal(domain.SIPGoalParams{TargetAmount: dec("1000000"), AnnualRatePercent: dec("12"), Years: 10})
	require.NoError(t, err)

	assertAmount(t, "4304.05", res.MonthlyInvestment)
	assert.InDelta(t, 516486.0, res.TotalInvestment.InexactFloat64(), 1)
	// investing the required amount lands on the target
	assert.InDelta(t, 1000000.0, res.Projection.Summary.FinalValue.InexactFloat64(), 0.01)
}

func TestEngine_LumpsumAndDeposits(t *testing.T) {
	e := newTestEngine()

	lump, err := e.Lumpsum(domain.LumpsumParams{Principal: dec("100000"), AnnualRatePercent: dec("12"), Years: 10})
	require.NoError(t, err)
	assertAmount(t, "310584.82", lump.Summary.FinalValue)
	assertAmount(t, "210584.82", lump.Summary.TotalGrowth)
	require.Len(t, lump.Series, 11)

	fd, err := e.FixedDeposit(domain.FixedDepositParams{Principal: dec("100000"), AnnualRatePercent: dec("7"), Years: 5})
	require.NoError(t, err)
	assertAmount(t, "141477.82", fd.Summary.FinalValue)
	require.NotNil(t, fd.Summary.EffectiveRatePercent)
	assertAmount(t, "7.19", *fd.Summary.EffectiveRatePercent)
	require.Len(t, fd.Series, 6, "quarterly compounding reported yearly")

	ci, err := e.CompoundInterest(domain.CompoundInterestParams{
		Principal: dec("10000"), AnnualRatePercent: dec("10"), Years: 2, CompoundingPerYear: 12,
	})
	require.NoError(t, err)
	assertAmount(t, "12203.91", ci.Summary.FinalValue)
	assertAmount(t, "10.47", *ci.Summary.EffectiveRatePercent)

	rd, err := e.RecurringDeposit(domain.RecurringDepositParams{MonthlyDeposit: dec("5000"), AnnualRatePercent: dec("7"), Months: 24})
	require.NoError(t, err)
	assert.InDelta(t, 129098.90, rd.Summary.FinalValue.InexactFloat64(), 0.05)
	assertAmount(t, "120000.00", rd.Summary.TotalContribution)
}

func TestEngine_CompoundingFrequency(t *testing.T) {
	e := newTestEngine()
	prev := dec("0")
	for _, m := range CompoundingFrequencies {
		res, err := e.CompoundInterest(domain.CompoundInterestParams{
			Principal: dec("10000"), AnnualRatePercent: dec("8"), Years: 3, CompoundingPerYear: m,
		})
		require.NoError(t, err)
		assert.True(t, res.Summary.FinalValue.GreaterThan(prev), "more frequent compounding earns more (m=%d)", m)
		prev = res.Summary.FinalValue
	}

	_, err := e.CompoundInterest(domain.CompoundInterestParams{
		Principal: dec("10000"), AnnualRatePercent: dec("8"), Years: 3, CompoundingPerYear: 3,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngine_PPF(t *testing.T) {
	e := newTestEngine()

	res, err := e.PPF(domain.PPFParams{YearlyDeposit: dec("150000")})
	require.NoError(t, err)
	assertAmount(t, "4068209.22", res.Summary.FinalValue)
	assertAmount(t, "2250000.00", res.Summary.TotalContribution)
	assert.Equal(t, 15, res.MaturityYear)
	assertAmount(t, "7.10", res.AnnualRatePercent)

	extended, err := e.PPF(domain.PPFParams{YearlyDeposit: dec("150000"), Years: 20})
	require.NoError(t, err)
	assert.True(t, extended.Summary.FinalValue.GreaterThan(res.Summary.FinalValue))

	tests := []struct {
		name   string
		params domain.PPFParams
	}{
		{"deposit above limit", domain.PPFParams{YearlyDeposit: dec("150001")}},
		{"deposit below minimum", domain.PPFParams{YearlyDeposit: dec("100")}},
		{"before maturity", domain.PPFParams{YearlyDeposit: dec("1000"), Years: 10}},
		{"partial extension block", domain.PPFParams{YearlyDeposit: dec("1000"), Years: 17}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.PPF(tt.params)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEngine_NPS(t *testing.T) {
	e := newTestEngine()

	res, err := e.NPS(domain.NPSParams{
		MonthlyContribution:   dec("5000"),
		CurrentAge:            30,
		ExpectedReturnPercent: dec("10"),
		AnnuityRatePercent:    dec("6"),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, res.YearsToRetirement)
	assertAmount(t, "11396626.62", res.Summary.FinalValue)
	assertAmount(t, "4558650.65", res.AnnuityCorpus)
	assertAmount(t, "6837975.97", res.LumpsumWithdrawal)
	assertAmount(t, "22793.25", res.MonthlyPension)
	assert.True(t, res.AnnuityCorpus.Add(res.LumpsumWithdrawal).Equal(res.Summary.FinalValue))
}

func TestEngine_NPSBirthDate(t *testing.T) {
	SetNowFunc(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { SetNowFunc(time.Now) })

	e := newTestEngine()
	res, err := e.NPS(domain.NPSParams{
		MonthlyContribution:   dec("5000"),
		BirthDate:             "1995-07-15",
		ExpectedReturnPercent: dec("10"),
		AnnuityRatePercent:    dec("6"),
	})
	require.NoError(t, err)
	assert.Equal(t, 31, res.YearsToRetirement, "age 29 until the July birthday")
}

func TestEngine_NPSValidation(t *testing.T) {
	e := newTestEngine()
	base := domain.NPSParams{MonthlyContribution: dec("5000"), CurrentAge: 30, ExpectedReturnPercent: dec("10")}

	tests := []struct {
		name   string
		modify func(p *domain.NPSParams)
	}{
		{"annuity below minimum", func(p *domain.NPSParams) { p.AnnuityPercent = dec("30") }},
		{"annuity above hundred", func(p *domain.NPSParams) { p.AnnuityPercent = dec("101") }},
		{"retired already", func(p *domain.NPSParams) { p.CurrentAge = 60 }},
		{"past entry age", func(p *domain.NPSParams) { p.CurrentAge = 71; p.RetirementAge = 75 }},
		{"bad birth date", func(p *domain.NPSParams) { p.BirthDate = "15/07/1995" }},
		{"no contribution", func(p *domain.NPSParams) { p.MonthlyContribution = dec("0") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.modify(&p)
			_, err := e.NPS(p)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEngine_MutualFund(t *testing.T) {
	e := newTestEngine()

	lump, err := e.MutualFund(domain.MutualFundParams{
		Mode: domain.ModeLumpsum, Amount: dec("100000"),
		ExpectedReturnPercent: dec("12"), ExpenseRatioPercent: dec("1"), Years: 10,
	})
	require.NoError(t, err)
	assertAmount(t, "283942.10", lump.Summary.FinalValue)
	assertAmount(t, "310584.82", lump.GrossValue)
	assertAmount(t, "26642.72", lump.ExpenseDrag)
	assertAmount(t, "11.00", lump.NetRatePercent)

	sip, err := e.MutualFund(domain.MutualFundParams{
		Mode: domain.ModeSIP, Amount: dec("5000"),
		ExpectedReturnPercent: dec("12"), ExpenseRatioPercent: dec("1"), Years: 10,
	})
	require.NoError(t, err)
	assertAmount(t, "1094936.44", sip.Summary.FinalValue)
	assertAmount(t, "1161695.38", sip.GrossValue)
	assertAmount(t, "66758.94", sip.ExpenseDrag)
	require.Len(t, sip.Series, 11)

	_, err = e.MutualFund(domain.MutualFundParams{Mode: "swp", Amount: dec("1"), Years: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "mode")
}

func TestEngine_InvestmentValidation(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		run  func() error
	}{
		{"sip without amount", func() error {
			_, err := e.SIP(domain.SIPParams{AnnualRatePercent: dec("12"), Years: 10})
			return err
		}},
		{"sip negative rate", func() error {
			_, err := e.SIP(domain.SIPParams{MonthlyInvestment: dec("1"), AnnualRatePercent: dec("-1"), Years: 10})
			return err
		}},
		{"sip zero years", func() error {
			_, err := e.SIP(domain.SIPParams{MonthlyInvestment: dec("1"), AnnualRatePercent: dec("12")})
			return err
		}},
		{"negative inflation", func() error {
			_, err := e.Lumpsum(domain.LumpsumParams{Principal: dec("1"), AnnualRatePercent: dec("1"), Years: 1,
				InflationToggle: domain.InflationToggle{AdjustForInflation: true, InflationPercent: dec("-2")}})
			return err
		}},
		{"fd unsupported frequency", func() error {
			_, err := e.FixedDeposit(domain.FixedDepositParams{Principal: dec("1"), AnnualRatePercent: dec("1"), Years: 1, CompoundingPerYear: 6})
			return err
		}},
		{"rd without months", func() error {
			_, err := e.RecurringDeposit(domain.RecurringDepositParams{MonthlyDeposit: dec("1"), AnnualRatePercent: dec("7")})
			return err
		}},
		{"goal without target", func() error {
			_, err := e.SIPGoal(domain.SIPGoalParams{AnnualRatePercent: dec("12"), Years: 10})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), ErrInvalidInput)
		})
	}
}
