package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/hanwool/gagyebu/internal/config"
	"github.com/hanwool/gagyebu/internal/exchange"
	"github.com/hanwool/gagyebu/internal/localstore"
	"github.com/hanwool/gagyebu/internal/logger"
	"github.com/hanwool/gagyebu/internal/model"
	"github.com/hanwool/gagyebu/internal/repository"
	"github.com/hanwool/gagyebu/internal/service"
	"github.com/hanwool/gagyebu/internal/session"
)

// app bundles the wired core for one command invocation. The persisted
// session is replayed into the observer before any operation runs, so
// routing reflects the state left behind by the last login/logout.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	observer *session.Observer
	ledger   *service.Ledger
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New()

	var remote repository.Repository = repository.Unconfigured{}
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		remote, err = repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey, log)
		if err != nil {
			return nil, err
		}
	}

	observer := session.NewObserver()
	ledger := service.NewLedger(
		localstore.New(cfg.GuestStoreFile),
		remote,
		observer,
		exchange.FileSource{Path: cfg.RatesFile},
		log,
	)
	observer.Subscribe(ledger)

	sess, err := session.Load(cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	observer.Seed(sess)

	return &app{cfg: cfg, log: log, observer: observer, ledger: ledger}, nil
}

// fail prints a message keyed by the error kind and picks the exit status.
func fail(err error) subcommands.ExitStatus {
	switch {
	case errors.Is(err, model.ErrValidation):
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	case errors.Is(err, model.ErrNotFound):
		fmt.Fprintf(os.Stderr, "No such transaction in the current scope: %v\n", err)
	case errors.Is(err, model.ErrStoreUnavailable):
		fmt.Fprintf(os.Stderr, "Remote store unavailable, nothing was written: %v\n", err)
	case errors.Is(err, exchange.ErrRateUnavailable):
		fmt.Fprintf(os.Stderr, "Missing exchange rate: %v\n", err)
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	return subcommands.ExitFailure
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// parseRange turns optional from/to flags into a filter over OccurredAt.
func parseRange(from, to string) (model.Filter, error) {
	var filter model.Filter
	if from != "" {
		t, err := parseDate(from)
		if err != nil {
			return filter, fmt.Errorf("bad -from date %q: %w", from, err)
		}
		filter.From = &t
	}
	if to != "" {
		t, err := parseDate(to)
		if err != nil {
			return filter, fmt.Errorf("bad -to date %q: %w", to, err)
		}
		filter.To = &t
	}
	return filter, nil
}
