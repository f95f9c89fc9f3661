package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/hanwool/gagyebu/internal/model"
)

type listCmd struct {
	from string
	to   string
	kind string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions in the current scope" }
func (*listCmd) Usage() string {
	return `gagyebu list [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-kind income|expense]

  Lists the current scope's transactions, optionally narrowed by date range
  and kind.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start date, inclusive.")
	f.StringVar(&c.to, "to", "", "End date, inclusive.")
	f.StringVar(&c.kind, "kind", "", "Restrict to one kind.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newApp()
	if err != nil {
		return fail(err)
	}

	filter, err := parseRange(c.from, c.to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	filter.Kind = model.Kind(c.kind)

	transactions, err := app.ledger.ListTransactions(ctx, filter)
	if err != nil {
		return fail(err)
	}
	if len(transactions) == 0 {
		fmt.Println("No transactions.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tKIND\tAMOUNT\tCATEGORY\tDESCRIPTION\tID")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
			t.OccurredAt.Format("2006-01-02"), t.Kind, t.Amount, t.Currency,
			t.Category, t.Description, t.ID)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
