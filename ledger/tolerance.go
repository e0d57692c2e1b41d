package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/beanmodel-dev/beanmodel/model"
)

// ToleranceConfig controls how balancing tolerances are inferred from the
// precision of a transaction's numbers.
type ToleranceConfig struct {
	// defaults maps currency to default tolerance ("*" is the wildcard)
	defaults map[model.Currency]decimal.Decimal
	// multiplier is applied to the smallest quantum (default 0.5)
	multiplier decimal.Decimal
	// inferFromCost includes cost and price numbers in the inference
	inferFromCost bool
}

// NewToleranceConfig returns the default configuration: 0.005 for every
// currency and a multiplier of 0.5, so two-decimal amounts tolerate half a
// cent of residue.
func NewToleranceConfig() *ToleranceConfig {
	return &ToleranceConfig{
		defaults: map[model.Currency]decimal.Decimal{
			"*": decimal.NewFromFloat(0.005),
		},
		multiplier:    decimal.NewFromFloat(0.5),
		inferFromCost: false,
	}
}

// SetDefault sets the fallback tolerance for a currency. Use "*" for the
// wildcard default.
func (c *ToleranceConfig) SetDefault(currency model.Currency, tolerance decimal.Decimal) {
	c.defaults[currency] = tolerance
}

// SetMultiplier overrides the multiplier applied to inferred tolerances.
func (c *ToleranceConfig) SetMultiplier(multiplier decimal.Decimal) {
	c.multiplier = multiplier
}

// SetInferFromCost toggles whether cost and price numbers participate in
// tolerance inference.
func (c *ToleranceConfig) SetInferFromCost(infer bool) {
	c.inferFromCost = infer
}

// DefaultTolerance returns the configured default for a currency, checking
// the currency-specific entry before the wildcard.
func (c *ToleranceConfig) DefaultTolerance(currency model.Currency) decimal.Decimal {
	if c == nil {
		return decimal.NewFromFloat(0.005)
	}
	if tolerance, ok := c.defaults[currency]; ok {
		return tolerance
	}
	if tolerance, ok := c.defaults["*"]; ok {
		return tolerance
	}
	return decimal.NewFromFloat(0.005)
}

// InferTolerance derives the tolerance for one currency from the numbers
// written for it. The smallest exponent among the non-zero numbers sets the
// quantum; the tolerance is that quantum times the multiplier. With no
// usable numbers the currency default applies.
func InferTolerance(amounts []decimal.Decimal, currency model.Currency, config *ToleranceConfig) decimal.Decimal {
	if config == nil {
		config = NewToleranceConfig()
	}

	minExp := int32(0)
	foundAny := false
	for _, amount := range amounts {
		if amount.IsZero() {
			continue
		}
		exp := amount.Exponent()
		if !foundAny || exp < minExp {
			minExp = exp
			foundAny = true
		}
	}
	if !foundAny {
		return config.DefaultTolerance(currency)
	}

	return decimal.New(1, minExp).Mul(config.multiplier)
}

// WithinTolerance reports whether a residual is acceptably close to zero.
func WithinTolerance(residual, tolerance decimal.Decimal) bool {
	return residual.Abs().LessThanOrEqual(tolerance)
}
