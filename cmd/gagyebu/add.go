package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/hanwool/gagyebu/internal/model"
)

type addCmd struct {
	kind        string
	amount      string
	currency    string
	category    string
	description string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense transaction" }
func (*addCmd) Usage() string {
	return `gagyebu add -kind <income|expense> -amount <n> -category <name> [-currency KRW] [-desc <text>] [-date YYYY-MM-DD]

  Records a transaction in the current scope: the local guest store while
  signed out, the remote ledger while signed in.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "expense", "Transaction kind: income or expense.")
	f.StringVar(&c.amount, "amount", "", "Amount, a non-negative decimal.")
	f.StringVar(&c.currency, "currency", "", "ISO currency code. Defaults to the configured currency.")
	f.StringVar(&c.category, "category", "", "Category name; must belong to the kind's vocabulary.")
	f.StringVar(&c.description, "desc", "", "Optional description.")
	f.StringVar(&c.date, "date", "", "Date the transaction applies to. Defaults to today.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newApp()
	if err != nil {
		return fail(err)
	}

	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}

	occurredAt := today()
	if c.date != "" {
		occurredAt, err = parseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -date %q: %v\n", c.date, err)
			return subcommands.ExitUsageError
		}
	}

	currency := c.currency
	if currency == "" {
		currency = app.cfg.DefaultCurrency
	}

	stored, err := app.ledger.AddTransaction(ctx, model.Transaction{
		Kind:        model.Kind(c.kind),
		Amount:      amount,
		Currency:    currency,
		Category:    c.category,
		Description: c.description,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return fail(err)
	}

	scope := "guest ledger"
	if stored.OwnerScope != model.ScopeGuest {
		scope = "remote ledger"
	}
	fmt.Printf("Recorded %s %s %s (%s) in the %s, id %s\n",
		stored.Kind, stored.Amount, stored.Currency, stored.Category, scope, stored.ID)
	return subcommands.ExitSuccess
}
