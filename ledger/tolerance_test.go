package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestInferTolerance(t *testing.T) {
	cfg := NewToleranceConfig()

	t.Run("two-decimal amounts tolerate half a cent", func(t *testing.T) {
		amounts := []decimal.Decimal{decimal.RequireFromString("-37.45")}
		tol := InferTolerance(amounts, "USD", cfg)
		assert.Equal(t, "0.005", tol.String())
	})

	t.Run("the most precise amount decides", func(t *testing.T) {
		amounts := []decimal.Decimal{
			decimal.RequireFromString("100.5"),
			decimal.RequireFromString("-100.5125"),
		}
		tol := InferTolerance(amounts, "USD", cfg)
		assert.Equal(t, "0.00005", tol.String())
	})

	t.Run("integer amounts tolerate half a unit", func(t *testing.T) {
		amounts := []decimal.Decimal{decimal.RequireFromString("25")}
		tol := InferTolerance(amounts, "IVV", cfg)
		assert.Equal(t, "0.5", tol.String())
	})

	t.Run("no amounts falls back to the currency default", func(t *testing.T) {
		tol := InferTolerance(nil, "USD", cfg)
		assert.Equal(t, "0.005", tol.String())
	})

	t.Run("zero amounts are skipped", func(t *testing.T) {
		amounts := []decimal.Decimal{decimal.RequireFromString("0.00")}
		tol := InferTolerance(amounts, "USD", cfg)
		assert.Equal(t, "0.005", tol.String())
	})

	t.Run("per-currency defaults beat the wildcard", func(t *testing.T) {
		cfg := NewToleranceConfig()
		cfg.SetDefault("JPY", decimal.RequireFromString("0.5"))
		assert.Equal(t, "0.5", cfg.DefaultTolerance("JPY").String())
		assert.Equal(t, "0.005", cfg.DefaultTolerance("USD").String())
	})

	t.Run("multiplier scales the inferred quantum", func(t *testing.T) {
		cfg := NewToleranceConfig()
		cfg.SetMultiplier(decimal.RequireFromString("0.6"))
		amounts := []decimal.Decimal{decimal.RequireFromString("100.00")}
		tol := InferTolerance(amounts, "USD", cfg)
		assert.Equal(t, "0.006", tol.String())
	})
}

func TestWithinTolerance(t *testing.T) {
	tol := decimal.RequireFromString("0.005")
	assert.True(t, WithinTolerance(decimal.RequireFromString("0.005"), tol))
	assert.True(t, WithinTolerance(decimal.RequireFromString("-0.004"), tol))
	assert.False(t, WithinTolerance(decimal.RequireFromString("0.006"), tol))
}
