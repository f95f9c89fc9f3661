package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hanwool/gagyebu/internal/exchange"
	"github.com/hanwool/gagyebu/internal/model"
	"github.com/hanwool/gagyebu/internal/repository"
	"github.com/hanwool/gagyebu/internal/session"
)

// GuestStore is the local store for records written before sign-in.
type GuestStore interface {
	Append(t model.Transaction) (model.Transaction, error)
	List() ([]model.Transaction, error)
	Update(id string, patch model.Patch) (model.Transaction, error)
	Remove(id string) error
	Clear() error
}

// SessionSource yields the session as of one operation. The service reads it
// before every routed call and never caches the answer across operations.
type SessionSource interface {
	Current() session.Session
}

// RateSource hands out the latest rate-table snapshot. Refreshing the table
// is an external collaborator's job.
type RateSource interface {
	Rates() (exchange.RateTable, error)
}

// Ledger is the single dispatch point for all transaction operations: it
// decides per call whether a request lands in the guest store or the remote
// repository, and it owns the guest-to-remote migration that runs on sign-in.
type Ledger struct {
	guest    GuestStore
	remote   repository.Repository
	sessions SessionSource
	rates    RateSource
	log      zerolog.Logger

	// mu makes the migration a critical section: operations hold it shared,
	// migration holds it exclusively, so a fresh authenticated write can
	// never interleave with an in-progress guest drain.
	mu sync.RWMutex

	reportMu      sync.Mutex
	lastMigration *MigrationReport
}

// NewLedger wires the service and subscribes it to session transitions.
func NewLedger(guest GuestStore, remote repository.Repository, sessions SessionSource, rates RateSource, log zerolog.Logger) *Ledger {
	return &Ledger{
		guest:    guest,
		remote:   remote,
		sessions: sessions,
		rates:    rates,
		log:      log.With().Str("component", "ledger").Logger(),
	}
}

// AddTransaction validates the input, stamps the owner scope from the
// current session, and routes the write. The caller's OwnerScope, ID and
// CreatedAt are ignored; the storage layer owns all three.
func (l *Ledger) AddTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t.ID = "" // storage assigns ids, callers don't
	sess := l.sessions.Current()
	if !sess.IsAuthenticated() {
		return l.guest.Append(t)
	}

	t.OwnerScope = sess.UserID
	t.CreatedAt = time.Now()
	if err := l.remote.CreateTransaction(ctx, &t); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// ListTransactions returns the current scope's records matching the filter.
// Guest records come back in insertion order.
func (l *Ledger) ListTransactions(ctx context.Context, filter model.Filter) ([]model.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.list(ctx, filter)
}

func (l *Ledger) list(ctx context.Context, filter model.Filter) ([]model.Transaction, error) {
	sess := l.sessions.Current()
	if sess.IsAuthenticated() {
		return l.remote.GetTransactions(ctx, sess.UserID, filter)
	}

	records, err := l.guest.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Transaction, 0, len(records))
	for _, t := range records {
		if filter.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// UpdateTransaction patches a record in the current scope. A record outside
// the scope is reported as not found, even if the id exists elsewhere.
func (l *Ledger) UpdateTransaction(ctx context.Context, id string, patch model.Patch) (model.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sess := l.sessions.Current()
	if sess.IsAuthenticated() {
		return l.remote.UpdateTransaction(ctx, sess.UserID, id, patch)
	}
	return l.guest.Update(id, patch)
}

// DeleteTransaction removes a record in the current scope.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sess := l.sessions.Current()
	if sess.IsAuthenticated() {
		return l.remote.DeleteTransaction(ctx, sess.UserID, id)
	}
	return l.guest.Remove(id)
}
