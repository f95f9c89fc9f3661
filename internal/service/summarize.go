package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/hanwool/gagyebu/internal/exchange"
	"github.com/hanwool/gagyebu/internal/model"
)

// Summary holds period totals, all converted into one target currency.
// Records whose currency could not be converted are excluded from every
// total and counted in Unconvertible instead of being silently dropped.
type Summary struct {
	Currency          string
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal
	Unconvertible     int
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
}

// Summarize computes income, expense and net balance for the filtered period
// in the target currency. The aggregation always runs over the full matching
// set, never a page of it, so totals stay exact.
func (l *Ledger) Summarize(ctx context.Context, filter model.Filter, targetCurrency string) (*Summary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records, err := l.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	table, err := l.rates.Rates()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Currency:          targetCurrency,
		IncomeByCategory:  make(map[string]decimal.Decimal),
		ExpenseByCategory: make(map[string]decimal.Decimal),
	}
	for _, t := range records {
		converted, err := exchange.Convert(t.Amount, t.Currency, targetCurrency, table)
		if errors.Is(err, exchange.ErrRateUnavailable) {
			summary.Unconvertible++
			l.log.Warn().Str("id", t.ID).Str("currency", t.Currency).Msg("no rate to target currency, excluded from totals")
			continue
		}
		if err != nil {
			return nil, err
		}

		switch t.Kind {
		case model.KindIncome:
			summary.TotalIncome = summary.TotalIncome.Add(converted)
			summary.IncomeByCategory[t.Category] = summary.IncomeByCategory[t.Category].Add(converted)
		case model.KindExpense:
			summary.TotalExpense = summary.TotalExpense.Add(converted)
			summary.ExpenseByCategory[t.Category] = summary.ExpenseByCategory[t.Category].Add(converted)
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}
