package model

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func stringPtr(s string) *string { return &s }

func datePtr(s string) *Date {
	d := MustDate(s)
	return &d
}

func TestCostSpecMatches(t *testing.T) {
	lot := Cost{
		Number:   decimal.RequireFromString("183.07"),
		Currency: "USD",
		Date:     MustDate("2014-02-11"),
		Label:    "ref-001",
	}

	t.Run("empty spec matches any lot", func(t *testing.T) {
		spec := &CostSpec{}
		assert.True(t, spec.IsEmpty())
		assert.True(t, spec.Matches(lot))
	})

	t.Run("each present field must agree", func(t *testing.T) {
		assert.True(t, (&CostSpec{NumberPer: decimalPtr("183.07")}).Matches(lot))
		assert.True(t, (&CostSpec{Currency: "USD"}).Matches(lot))
		assert.True(t, (&CostSpec{Date: datePtr("2014-02-11")}).Matches(lot))
		assert.True(t, (&CostSpec{Label: stringPtr("ref-001")}).Matches(lot))

		assert.False(t, (&CostSpec{NumberPer: decimalPtr("187.12")}).Matches(lot))
		assert.False(t, (&CostSpec{Currency: "CAD"}).Matches(lot))
		assert.False(t, (&CostSpec{Date: datePtr("2014-02-12")}).Matches(lot))
		assert.False(t, (&CostSpec{Label: stringPtr("other")}).Matches(lot))
	})

	t.Run("combined fields all apply", func(t *testing.T) {
		spec := &CostSpec{NumberPer: decimalPtr("183.07"), Currency: "USD", Date: datePtr("2014-02-11")}
		assert.True(t, spec.Matches(lot))

		spec.Date = datePtr("2015-01-01")
		assert.False(t, spec.Matches(lot))
	})

	t.Run("merge spec is not empty", func(t *testing.T) {
		spec := &CostSpec{MergeCost: true}
		assert.False(t, spec.IsEmpty())
		assert.Equal(t, "{*}", spec.String())
	})
}

func TestCostAndSpecString(t *testing.T) {
	cost := Cost{
		Number:   decimal.RequireFromString("183.07"),
		Currency: "USD",
		Date:     MustDate("2014-02-11"),
		Label:    "ref-001",
	}
	assert.Equal(t, `{183.07 USD, 2014-02-11, "ref-001"}`, cost.String())

	assert.Equal(t, "{}", (&CostSpec{}).String())
	assert.Equal(t, "{183.07 USD}", (&CostSpec{NumberPer: decimalPtr("183.07"), Currency: "USD"}).String())
	assert.Equal(t, "{# 3661.4 USD}", (&CostSpec{NumberTotal: decimalPtr("3661.4"), Currency: "USD"}).String())
}

func TestPositionString(t *testing.T) {
	costless := Position{Units: MustAmount("1200", "USD")}
	assert.Equal(t, "1200 USD", costless.String())

	costed := Position{
		Units: MustAmount("20", "IVV"),
		Cost: &Cost{
			Number:   decimal.RequireFromString("183.07"),
			Currency: "USD",
			Date:     MustDate("2014-02-11"),
		},
	}
	assert.Equal(t, "20 IVV {183.07 USD, 2014-02-11}", costed.String())
}
