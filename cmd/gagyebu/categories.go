package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/hanwool/gagyebu/internal/model"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "show the category vocabulary" }
func (*categoriesCmd) Usage() string {
	return `gagyebu categories

  Prints the allowed categories per kind. The vocabulary is closed: a
  transaction must use a category from its kind's list.
`
}

func (*categoriesCmd) SetFlags(f *flag.FlagSet) {}

func (*categoriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Income:")
	for _, name := range model.Categories(model.KindIncome) {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("Expense:")
	for _, name := range model.Categories(model.KindExpense) {
		fmt.Printf("  %s\n", name)
	}
	return subcommands.ExitSuccess
}
