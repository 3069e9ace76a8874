package calculation

import (
	"testing"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

func newTestEngine() *Engine {
	return NewEngine(config.DefaultPolicy(), nil)
}
