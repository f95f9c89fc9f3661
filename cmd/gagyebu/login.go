package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hanwool/gagyebu/internal/session"
)

type loginCmd struct {
	user string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in and migrate guest records to the remote ledger" }
func (*loginCmd) Usage() string {
	return `gagyebu login -user <user-id>

  Starts an authenticated session. The user id comes from the auth
  provider; validating credentials is its job, not this tool's. Any guest
  records are migrated into the user's remote scope; the guest store is
  cleared only when every record made it.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Authenticated user id.")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required.")
		return subcommands.ExitUsageError
	}

	app, err := newApp()
	if err != nil {
		return fail(err)
	}

	if app.observer.Current().UserID == c.user {
		fmt.Printf("Already signed in as %s.\n", c.user)
		return subcommands.ExitSuccess
	}

	// SignIn emits the transition; the ledger service runs the guest
	// migration inside that notification.
	app.observer.SignIn(c.user)

	if err := session.Save(app.cfg.SessionFile, session.Authenticated(c.user)); err != nil {
		return fail(err)
	}
	fmt.Printf("Signed in as %s.\n", c.user)

	report := app.ledger.LastMigration()
	if report == nil {
		return subcommands.ExitSuccess
	}
	if report.Err != nil {
		fmt.Fprintf(os.Stderr, "Guest migration did not complete: %v\n", report.Err)
	}
	if report.Attempted == 0 {
		return subcommands.ExitSuccess
	}
	fmt.Printf("Migrated %d of %d guest record(s).\n", report.Migrated, report.Attempted)
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "  failed %s: %v\n", failure.ID, failure.Err)
	}
	if !report.Cleared {
		fmt.Println("Guest records were kept locally; the next login retries the failed ones.")
	}
	return subcommands.ExitSuccess
}
