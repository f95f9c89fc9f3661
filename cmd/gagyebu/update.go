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

type updateCmd struct {
	id          string
	amount      string
	category    string
	description string
	date        string
	descSet     bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "edit a transaction in the current scope" }
func (*updateCmd) Usage() string {
	return `gagyebu update -id <id> [-amount <n>] [-category <name>] [-desc <text>] [-date YYYY-MM-DD]

  Patches the given fields of one transaction. Kind and currency are fixed
  at creation and cannot be changed.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
	f.StringVar(&c.category, "category", "", "New category.")
	f.StringVar(&c.description, "desc", "", "New description; pass an empty string to clear it.")
	f.StringVar(&c.date, "date", "", "New date.")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	// An empty -desc is a meaningful edit, so flag presence matters.
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "desc" {
			c.descSet = true
		}
	})

	var patch model.Patch
	if c.amount != "" {
		amount, err := decimal.NewFromString(c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -amount %q: %v\n", c.amount, err)
			return subcommands.ExitUsageError
		}
		patch.Amount = &amount
	}
	if c.category != "" {
		patch.Category = &c.category
	}
	if c.descSet {
		patch.Description = &c.description
	}
	if c.date != "" {
		occurredAt, err := parseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -date %q: %v\n", c.date, err)
			return subcommands.ExitUsageError
		}
		patch.OccurredAt = &occurredAt
	}

	app, err := newApp()
	if err != nil {
		return fail(err)
	}
	updated, err := app.ledger.UpdateTransaction(ctx, c.id, patch)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Updated %s: %s %s %s (%s)\n",
		updated.ID, updated.Kind, updated.Amount, updated.Currency, updated.Category)
	return subcommands.ExitSuccess
}
