package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/hanwool/gagyebu/internal/charts"
	"github.com/hanwool/gagyebu/internal/model"
	"github.com/hanwool/gagyebu/internal/service"
)

type summaryCmd struct {
	from     string
	to       string
	currency string
	chart    string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "total income, expense and balance for a period" }
func (*summaryCmd) Usage() string {
	return `gagyebu summary [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-currency KRW] [-chart <path-prefix>]

  Sums the period's income and expense in the target currency, with a
  per-category breakdown. Records without a conversion rate are excluded
  and reported. With -chart, PNG breakdown charts are written next to the
  given prefix.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start date, inclusive.")
	f.StringVar(&c.to, "to", "", "End date, inclusive.")
	f.StringVar(&c.currency, "currency", "", "Target currency. Defaults to the configured currency.")
	f.StringVar(&c.chart, "chart", "", "Write <prefix>_expense.png and <prefix>_balance.png.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newApp()
	if err != nil {
		return fail(err)
	}

	filter, err := parseRange(c.from, c.to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	currency := c.currency
	if currency == "" {
		currency = app.cfg.DefaultCurrency
	}

	summary, err := app.ledger.Summarize(ctx, filter, currency)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Income:  %s %s\n", summary.TotalIncome, summary.Currency)
	fmt.Printf("Expense: %s %s\n", summary.TotalExpense, summary.Currency)
	fmt.Printf("Balance: %s %s\n", summary.Balance, summary.Currency)
	if summary.Unconvertible > 0 {
		fmt.Printf("Excluded %d record(s) with no rate to %s.\n", summary.Unconvertible, summary.Currency)
	}
	printBreakdown("Expense by category:", summary.ExpenseByCategory, summary.Currency)
	printBreakdown("Income by category:", summary.IncomeByCategory, summary.Currency)

	if c.chart != "" {
		if err := c.writeCharts(summary); err != nil {
			return fail(err)
		}
	}
	return subcommands.ExitSuccess
}

func printBreakdown(title string, byCategory map[string]decimal.Decimal, currency string) {
	if len(byCategory) == 0 {
		return
	}
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\n" + title)
	for _, name := range names {
		fmt.Printf("  %-12s %s %s\n", name, byCategory[name], currency)
	}
}

func (c *summaryCmd) writeCharts(summary *service.Summary) error {
	generator := charts.NewChartGenerator()

	pie, err := generator.CategoryPie(summary, model.KindExpense)
	if err != nil {
		return err
	}
	if pie != nil {
		name := c.chart + "_expense.png"
		if err := os.WriteFile(name, pie, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", name)
	}

	bar, err := generator.BalanceBar(summary)
	if err != nil {
		return err
	}
	name := c.chart + "_balance.png"
	if err := os.WriteFile(name, bar, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", name)
	return nil
}
