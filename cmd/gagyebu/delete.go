package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a transaction in the current scope" }
func (*deleteCmd) Usage() string {
	return `gagyebu delete -id <id>

  Deletes one transaction from the current scope.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	app, err := newApp()
	if err != nil {
		return fail(err)
	}
	if err := app.ledger.DeleteTransaction(ctx, c.id); err != nil {
		return fail(err)
	}

	fmt.Printf("Deleted %s\n", c.id)
	return subcommands.ExitSuccess
}
