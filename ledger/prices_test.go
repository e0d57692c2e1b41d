package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/beanmodel-dev/beanmodel/model"
)

func TestPriceDBForwardFill(t *testing.T) {
	db := NewPriceDB()
	assert.NoError(t, db.Record(model.MustDate("2014-07-09"), "IVV", model.MustAmount("183.07", "USD")))
	assert.NoError(t, db.Record(model.MustDate("2014-09-01"), "IVV", model.MustAmount("187.12", "USD")))

	t.Run("exact date", func(t *testing.T) {
		rate, ok := db.Latest(model.MustDate("2014-07-09"), "IVV", "USD")
		assert.True(t, ok)
		assert.Equal(t, "183.07", rate.String())
	})

	t.Run("between points returns the earlier rate", func(t *testing.T) {
		rate, ok := db.Latest(model.MustDate("2014-08-15"), "IVV", "USD")
		assert.True(t, ok)
		assert.Equal(t, "183.07", rate.String())
	})

	t.Run("after the last point returns the latest rate", func(t *testing.T) {
		rate, ok := db.Latest(model.MustDate("2015-01-01"), "IVV", "USD")
		assert.True(t, ok)
		assert.Equal(t, "187.12", rate.String())
	})

	t.Run("before the first point finds nothing", func(t *testing.T) {
		_, ok := db.Latest(model.MustDate("2014-01-01"), "IVV", "USD")
		assert.False(t, ok)
	})
}

func TestPriceDBInverse(t *testing.T) {
	db := NewPriceDB()
	assert.NoError(t, db.Record(model.MustDate("2014-07-09"), "USD", model.MustAmount("1.25", "CAD")))

	rate, ok := db.Latest(model.MustDate("2014-07-09"), "CAD", "USD")
	assert.True(t, ok)
	assert.Equal(t, "0.8", rate.String())
}

func TestPriceDBSameCurrency(t *testing.T) {
	db := NewPriceDB()
	rate, ok := db.Latest(model.MustDate("2014-07-09"), "USD", "USD")
	assert.True(t, ok)
	assert.Equal(t, "1", rate.String())
}

func TestPriceDBConvert(t *testing.T) {
	db := NewPriceDB()
	assert.NoError(t, db.Record(model.MustDate("2014-07-09"), "IVV", model.MustAmount("183.07", "USD")))

	converted, ok := db.Convert(model.MustDate("2014-08-01"), model.MustAmount("20", "IVV"), "USD")
	assert.True(t, ok)
	assert.Equal(t, "3661.4 USD", converted.String())

	_, ok = db.Convert(model.MustDate("2014-08-01"), model.MustAmount("20", "IVV"), "EUR")
	assert.False(t, ok)
}

func TestPriceDBRejectsNonPositive(t *testing.T) {
	db := NewPriceDB()
	assert.Error(t, db.Record(model.MustDate("2014-07-09"), "IVV", model.MustAmount("0", "USD")))
	assert.Error(t, db.Record(model.MustDate("2014-07-09"), "IVV", model.MustAmount("-1", "USD")))
}
