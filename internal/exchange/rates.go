// Package exchange converts amounts between currencies using a rate-table
// snapshot supplied by the caller. It never fetches rates itself.
package exchange

import (
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrRateUnavailable marks a conversion with no rate path between the
// requested currencies in the supplied table.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// RateTable maps from-currency to to-currency to the multiplication rate.
// It is a per-call snapshot; refreshing it is the rate provider's job.
type RateTable map[string]map[string]decimal.Decimal

// Rate resolves the rate from one currency to another, falling back to the
// inverse of the reverse pair when only that direction is present.
func (rt RateTable) Rate(from, to string) (decimal.Decimal, bool) {
	if r, ok := rt[from][to]; ok && !r.IsZero() {
		return r, true
	}
	if r, ok := rt[to][from]; ok && !r.IsZero() {
		return decimal.NewFromInt(1).Div(r), true
	}
	return decimal.Decimal{}, false
}

// Convert converts amount from one currency to another. Identity conversions
// return the input untouched. The arithmetic stays in full decimal precision;
// rounding to the target currency's minor unit happens only on the final
// result, so repeated conversions do not compound rounding error.
func Convert(amount decimal.Decimal, from, to string, table RateTable) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, ok := table.Rate(from, to)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}
	return amount.Mul(rate).Round(MinorUnits(to)), nil
}

// MinorUnits returns the number of decimal places of the currency's minor
// unit (0 for KRW and JPY, 2 for USD). Unknown codes default to 2.
func MinorUnits(code string) int32 {
	if c := money.GetCurrency(code); c != nil {
		return int32(c.Fraction)
	}
	return 2
}
