package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/beanmodel-dev/beanmodel/model"
)

// Config holds parsed ledger options. It is read-only during processing so
// a single Config may serve any number of Process calls.
type Config struct {
	Tolerance      *ToleranceConfig
	Roots          model.RootNames
	DefaultBooking model.Booking
}

// NewConfig returns a Config with stock defaults: standard root names,
// STRICT booking, and the default tolerances.
func NewConfig() *Config {
	return &Config{
		Tolerance:      NewToleranceConfig(),
		Roots:          model.DefaultRootNames(),
		DefaultBooking: model.BookingStrict,
	}
}

// ConfigFromOptions builds a Config from option directives. Recognized
// names:
//
//	option "inferred_tolerance_default" "CURRENCY:TOLERANCE"
//	option "inferred_tolerance_multiplier" "0.6"
//	option "infer_tolerance_from_cost" "TRUE"
//	option "booking_method" "FIFO"
//	option "name_assets" "Activa"
//
// Unrecognized options are ignored so callers can carry options meant for
// other tools.
func ConfigFromOptions(opts []*model.Option) (*Config, error) {
	options := make(map[string][]string)
	for _, opt := range opts {
		options[opt.Name] = append(options[opt.Name], opt.Value)
	}

	cfg := NewConfig()

	if vals := options["inferred_tolerance_multiplier"]; len(vals) > 0 {
		multiplier, err := decimal.NewFromString(vals[0])
		if err != nil {
			return nil, fmt.Errorf("invalid inferred_tolerance_multiplier %q: %w", vals[0], err)
		}
		cfg.Tolerance.SetMultiplier(multiplier)
	}

	for _, val := range options["inferred_tolerance_default"] {
		parts := strings.SplitN(val, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid inferred_tolerance_default format %q, expected CURRENCY:TOLERANCE", val)
		}
		currency := strings.TrimSpace(parts[0])
		tolerance, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid tolerance value in %q: %w", val, err)
		}
		cfg.Tolerance.SetDefault(model.Currency(currency), tolerance)
	}

	if vals := options["infer_tolerance_from_cost"]; len(vals) > 0 {
		cfg.Tolerance.SetInferFromCost(strings.EqualFold(vals[0], "TRUE"))
	}

	if vals := options["booking_method"]; len(vals) > 0 {
		booking, err := model.ParseBooking(vals[0])
		if err != nil {
			return nil, err
		}
		cfg.DefaultBooking = booking
	}

	for typ, opt := range map[model.AccountType]string{
		model.AccountTypeAssets:      "name_assets",
		model.AccountTypeLiabilities: "name_liabilities",
		model.AccountTypeEquity:      "name_equity",
		model.AccountTypeIncome:      "name_income",
		model.AccountTypeExpenses:    "name_expenses",
	} {
		if vals := options[opt]; len(vals) > 0 {
			if err := cfg.Roots.Rename(typ, vals[0]); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}
