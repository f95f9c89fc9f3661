package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/hanwool/gagyebu/internal/session"
)

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "end the authenticated session" }
func (*logoutCmd) Usage() string {
	return `gagyebu logout

  Ends the session. Routing returns to the local guest store; no stored
  data is touched on either side.
`
}

func (*logoutCmd) SetFlags(f *flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newApp()
	if err != nil {
		return fail(err)
	}

	app.observer.SignOut()
	if err := session.Discard(app.cfg.SessionFile); err != nil {
		return fail(err)
	}
	fmt.Println("Signed out.")
	return subcommands.ExitSuccess
}
