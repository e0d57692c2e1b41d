package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/beanmodel-dev/beanmodel/model"
)

func openDirective(date, account string, currencies ...string) *model.Open {
	open := &model.Open{Date: model.MustDate(date), Account: model.MustAccount(account)}
	for _, c := range currencies {
		open.Currencies = append(open.Currencies, model.MustCurrency(c))
	}
	return open
}

func process(t *testing.T, directives ...model.Directive) (*Ledger, error) {
	t.Helper()
	var doc model.Ledger
	doc.Add(directives...)
	l := New()
	err := l.Process(context.Background(), &doc)
	return l, err
}

func TestProcessLifecycle(t *testing.T) {
	t.Run("open then use then close", func(t *testing.T) {
		l, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Expenses:Rent"),
			balanceTxn("2014-05-02",
				posting("Assets:Checking", "-400.00 USD"),
				posting("Expenses:Rent", "400.00 USD"),
			),
			&model.Close{Date: model.MustDate("2014-06-01"), Account: model.MustAccount("Assets:Checking")},
		)
		assert.NoError(t, err)

		account, ok := l.Account("Assets:Checking")
		assert.True(t, ok)
		assert.True(t, account.IsClosed())
		assert.Equal(t, "-400", account.Inventory.Units("USD").String())
		assert.Equal(t, 1, len(l.Transactions()))
	})

	t.Run("posting to an unopened account", func(t *testing.T) {
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			balanceTxn("2014-05-02",
				posting("Assets:Checking", "-400.00 USD"),
				posting("Expenses:Rent", "400.00 USD"),
			),
		)

		var nerr *AccountNotOpenError
		assert.True(t, errors.As(err, &nerr))
		assert.Equal(t, "Expenses:Rent", nerr.Account.String())
	})

	t.Run("posting before the open date", func(t *testing.T) {
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Expenses:Rent"),
			balanceTxn("2014-04-30",
				posting("Assets:Checking", "-400.00 USD"),
				posting("Expenses:Rent", "400.00 USD"),
			),
		)
		assert.Error(t, err)
	})

	t.Run("posting after the close date", func(t *testing.T) {
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Expenses:Rent"),
			&model.Close{Date: model.MustDate("2014-06-01"), Account: model.MustAccount("Assets:Checking")},
			balanceTxn("2014-06-02",
				posting("Assets:Checking", "-400.00 USD"),
				posting("Expenses:Rent", "400.00 USD"),
			),
		)
		assert.Error(t, err)
	})

	t.Run("double open and double close", func(t *testing.T) {
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-02", "Assets:Checking"),
		)
		var oerr *AccountAlreadyOpenError
		assert.True(t, errors.As(err, &oerr))

		_, err = process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			&model.Close{Date: model.MustDate("2014-06-01"), Account: model.MustAccount("Assets:Checking")},
			&model.Close{Date: model.MustDate("2014-07-01"), Account: model.MustAccount("Assets:Checking")},
		)
		var cerr *AccountAlreadyClosedError
		assert.True(t, errors.As(err, &cerr))

		_, err = process(t,
			&model.Close{Date: model.MustDate("2014-06-01"), Account: model.MustAccount("Assets:Checking")},
		)
		var uerr *AccountNeverOpenedError
		assert.True(t, errors.As(err, &uerr))
	})

	t.Run("currency constraint is enforced", func(t *testing.T) {
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking", "USD"),
			openDirective("2014-05-01", "Expenses:Rent"),
			balanceTxn("2014-05-02",
				posting("Assets:Checking", "-400.00 CAD"),
				posting("Expenses:Rent", "400.00 CAD"),
			),
		)

		var cerr *CurrencyNotAllowedError
		assert.True(t, errors.As(err, &cerr))
		assert.Equal(t, model.Currency("CAD"), cerr.Currency)
	})

	t.Run("same-day open and use works", func(t *testing.T) {
		_, err := process(t,
			balanceTxn("2014-05-01",
				posting("Assets:Checking", "-400.00 USD"),
				posting("Expenses:Rent", "400.00 USD"),
			),
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Expenses:Rent"),
		)
		assert.NoError(t, err)
	})
}

func TestProcessBalanceAssertion(t *testing.T) {
	t.Run("assertion checks the state at the beginning of its date", func(t *testing.T) {
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Equity:Opening-Balances"),
			balanceTxn("2014-05-02",
				posting("Assets:Checking", "562.00 USD"),
				posting("Equity:Opening-Balances", "-562.00 USD"),
			),
			// Same-day transaction must not count toward the assertion.
			&model.Balance{
				Date:    model.MustDate("2014-05-03"),
				Account: model.MustAccount("Assets:Checking"),
				Amount:  model.MustAmount("562.00", "USD"),
			},
			balanceTxn("2014-05-03",
				posting("Assets:Checking", "-100.00 USD"),
				posting("Equity:Opening-Balances", "100.00 USD"),
			),
		)
		assert.NoError(t, err)
	})

	t.Run("mismatch is reported with both sides", func(t *testing.T) {
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Equity:Opening-Balances"),
			balanceTxn("2014-05-02",
				posting("Assets:Checking", "500.00 USD"),
				posting("Equity:Opening-Balances", "-500.00 USD"),
			),
			&model.Balance{
				Date:    model.MustDate("2014-05-03"),
				Account: model.MustAccount("Assets:Checking"),
				Amount:  model.MustAmount("562.00", "USD"),
			},
		)

		var berr *BalanceMismatchError
		assert.True(t, errors.As(err, &berr))
		assert.Equal(t, "500", berr.Actual.String())
		assert.Equal(t, "2014-05-03: balance failed for Assets:Checking: expected 562 USD, accumulated 500 USD", berr.Error())
	})

	t.Run("explicit tolerance widens the check", func(t *testing.T) {
		tol := decimalPtr("0.05")
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Equity:Opening-Balances"),
			balanceTxn("2014-05-02",
				posting("Assets:Checking", "562.03 USD"),
				posting("Equity:Opening-Balances", "-562.03 USD"),
			),
			&model.Balance{
				Date:      model.MustDate("2014-05-03"),
				Account:   model.MustAccount("Assets:Checking"),
				Amount:    model.MustAmount("562.00", "USD"),
				Tolerance: tol,
			},
		)
		assert.NoError(t, err)
	})
}

func TestProcessPad(t *testing.T) {
	t.Run("pad fills the gap to the next assertion", func(t *testing.T) {
		l, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Equity:Opening-Balances"),
			&model.Pad{
				Date:          model.MustDate("2014-06-01"),
				Account:       model.MustAccount("Assets:Checking"),
				SourceAccount: model.MustAccount("Equity:Opening-Balances"),
			},
			&model.Balance{
				Date:    model.MustDate("2014-08-09"),
				Account: model.MustAccount("Assets:Checking"),
				Amount:  model.MustAmount("987.34", "USD"),
			},
		)
		assert.NoError(t, err)

		assert.Equal(t, 1, len(l.PadTransactions()))
		pad := l.PadTransactions()[0]
		assert.Equal(t, model.FlagPadding, pad.Flag)
		assert.True(t, pad.Date.Equal(model.MustDate("2014-06-01")))

		checking, _ := l.Account("Assets:Checking")
		assert.Equal(t, "987.34", checking.Inventory.Units("USD").String())
		source, _ := l.Account("Equity:Opening-Balances")
		assert.Equal(t, "-987.34", source.Inventory.Units("USD").String())
	})

	t.Run("a pad no assertion consumes is an error", func(t *testing.T) {
		_, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Equity:Opening-Balances"),
			&model.Pad{
				Date:          model.MustDate("2014-06-01"),
				Account:       model.MustAccount("Assets:Checking"),
				SourceAccount: model.MustAccount("Equity:Opening-Balances"),
			},
		)

		var perr *UnusedPadError
		assert.True(t, errors.As(err, &perr))
	})
}

func TestProcessPrices(t *testing.T) {
	t.Run("price directives land in the database", func(t *testing.T) {
		l, err := process(t,
			&model.Price{Date: model.MustDate("2014-07-09"), Currency: "IVV", Amount: model.MustAmount("183.07", "USD")},
		)
		assert.NoError(t, err)

		rate, ok := l.Prices().Latest(model.MustDate("2014-08-01"), "IVV", "USD")
		assert.True(t, ok)
		assert.Equal(t, "183.07", rate.String())
	})

	t.Run("posting prices are recorded as implied prices", func(t *testing.T) {
		sold := posting("Assets:Checking", "-400.00 USD")
		price := model.Incomplete(model.MustAmount("1.09", "CAD"))
		sold.Price = &price

		l, err := process(t,
			openDirective("2014-05-01", "Assets:Checking"),
			openDirective("2014-05-01", "Assets:CAD"),
			balanceTxn("2014-05-02", sold, posting("Assets:CAD", "436.00 CAD")),
		)
		assert.NoError(t, err)

		rate, ok := l.Prices().Latest(model.MustDate("2014-05-02"), "USD", "CAD")
		assert.True(t, ok)
		assert.Equal(t, "1.09", rate.String())
	})

	t.Run("cost annotations are recorded as implied prices", func(t *testing.T) {
		bought := posting("Assets:Invest", "20 IVV")
		bought.Cost = &model.CostSpec{NumberPer: decimalPtr("183.07"), Currency: "USD"}

		l, err := process(t,
			openDirective("2014-02-01", "Assets:Invest"),
			openDirective("2014-02-01", "Assets:Cash"),
			balanceTxn("2014-02-11", bought, posting("Assets:Cash", "-3661.40 USD")),
		)
		assert.NoError(t, err)

		rate, ok := l.Prices().Latest(model.MustDate("2014-02-11"), "IVV", "USD")
		assert.True(t, ok)
		assert.Equal(t, "183.07", rate.String())
	})

	t.Run("a total cost is normalized to a per-unit rate", func(t *testing.T) {
		bought := posting("Assets:Invest", "20 IVV")
		bought.Cost = &model.CostSpec{NumberTotal: decimalPtr("3661.40"), Currency: "USD"}

		l, err := process(t,
			openDirective("2014-02-01", "Assets:Invest"),
			openDirective("2014-02-01", "Assets:Cash"),
			balanceTxn("2014-02-11", bought, posting("Assets:Cash", "-3661.40 USD")),
		)
		assert.NoError(t, err)

		rate, ok := l.Prices().Latest(model.MustDate("2014-02-11"), "IVV", "USD")
		assert.True(t, ok)
		assert.Equal(t, "183.07", rate.String())
	})

	t.Run("a zero rate is rejected", func(t *testing.T) {
		_, err := process(t,
			&model.Price{Date: model.MustDate("2014-07-09"), Currency: "IVV", Amount: model.MustAmount("0", "USD")},
		)

		var perr *InvalidPriceError
		assert.True(t, errors.As(err, &perr))
	})
}

func TestProcessOptions(t *testing.T) {
	t.Run("booking method option sets the default", func(t *testing.T) {
		// Two same-cost-currency lots, an empty-spec reduction spanning
		// both: STRICT would refuse, FIFO resolves it.
		buyOld := posting("Assets:Invest", "20 IVV")
		buyOld.Cost = &model.CostSpec{NumberPer: decimalPtr("183.07"), Currency: "USD"}
		buyNew := posting("Assets:Invest", "15 IVV")
		buyNew.Cost = &model.CostSpec{NumberPer: decimalPtr("187.12"), Currency: "USD"}
		sell := posting("Assets:Invest", "-25 IVV")
		sell.Cost = &model.CostSpec{}

		l, err := process(t,
			&model.Option{Name: "booking_method", Value: "FIFO"},
			openDirective("2014-05-01", "Assets:Invest"),
			openDirective("2014-05-01", "Assets:Checking"),
			balanceTxn("2014-05-02", buyOld, posting("Assets:Checking", "-3661.40 USD")),
			balanceTxn("2014-05-03", buyNew, posting("Assets:Checking", "-2806.80 USD")),
			balanceTxn("2014-05-04", sell, posting("Assets:Checking", "4597.00 USD")),
		)
		assert.NoError(t, err)

		invest, _ := l.Account("Assets:Invest")
		assert.Equal(t, "10", invest.Inventory.Units("IVV").String())
	})

	t.Run("per-account booking overrides the default", func(t *testing.T) {
		booking := model.BookingStrict
		open := openDirective("2014-05-01", "Assets:Invest")
		open.Booking = &booking

		buyOld := posting("Assets:Invest", "20 IVV")
		buyOld.Cost = &model.CostSpec{NumberPer: decimalPtr("183.07"), Currency: "USD"}
		buyNew := posting("Assets:Invest", "15 IVV")
		buyNew.Cost = &model.CostSpec{NumberPer: decimalPtr("187.12"), Currency: "USD"}
		sell := posting("Assets:Invest", "-25 IVV")
		sell.Cost = &model.CostSpec{}

		_, err := process(t,
			&model.Option{Name: "booking_method", Value: "FIFO"},
			open,
			openDirective("2014-05-01", "Assets:Checking"),
			balanceTxn("2014-05-02", buyOld, posting("Assets:Checking", "-3661.40 USD")),
			balanceTxn("2014-05-03", buyNew, posting("Assets:Checking", "-2806.80 USD")),
			balanceTxn("2014-05-04", sell, posting("Assets:Checking", "4597.00 USD")),
		)

		var aerr *AmbiguousBookingError
		assert.True(t, errors.As(err, &aerr))
	})
}

func TestProcessCollectsAllErrors(t *testing.T) {
	_, err := process(t,
		openDirective("2014-05-01", "Assets:Checking"),
		openDirective("2014-05-02", "Assets:Checking"),
		balanceTxn("2014-05-03",
			posting("Assets:Checking", "-400.00 USD"),
			posting("Expenses:Rent", "400.00 USD"),
		),
	)

	var verr *ValidationErrors
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 2, len(verr.Errors))
}

func TestProcessCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var doc model.Ledger
	doc.Add(openDirective("2014-05-01", "Assets:Checking"))

	err := New().Process(ctx, &doc)
	assert.IsError(t, err, context.Canceled)
}
