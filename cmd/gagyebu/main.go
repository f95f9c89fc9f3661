// Command gagyebu is a household ledger. Records land in a local guest
// store until sign-in, then in the remote backend; guest records are drained
// into the user's remote scope on login.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")

	subcommands.Register(&addCmd{}, "ledger")
	subcommands.Register(&listCmd{}, "ledger")
	subcommands.Register(&updateCmd{}, "ledger")
	subcommands.Register(&deleteCmd{}, "ledger")
	subcommands.Register(&summaryCmd{}, "ledger")
	subcommands.Register(&categoriesCmd{}, "ledger")

	subcommands.Register(&loginCmd{}, "session")
	subcommands.Register(&logoutCmd{}, "session")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
