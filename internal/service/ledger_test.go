package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hanwool/gagyebu/internal/exchange"
	"github.com/hanwool/gagyebu/internal/localstore"
	"github.com/hanwool/gagyebu/internal/model"
	"github.com/hanwool/gagyebu/internal/session"
)

// fakeRepo is an in-memory Repository with per-call failure injection and
// an optional slow-create mode for exercising in-flight migrations.
type fakeRepo struct {
	mu      sync.Mutex
	rows    []model.Transaction
	nextID  int
	creates int
	failOn  map[int]error // 1-based create call index -> injected error

	delay     time.Duration // applied to every create
	started   chan struct{} // closed when the first create begins
	startOnce sync.Once
}

func (f *fakeRepo) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	if f.started != nil {
		f.startOnce.Do(func() { close(f.started) })
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++
	if err := f.failOn[f.creates]; err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	f.nextID++
	t.ID = fmt.Sprintf("srv-%d", f.nextID)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeRepo) GetTransactions(ctx context.Context, userID string, filter model.Filter) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Transaction
	for _, row := range f.rows {
		if row.OwnerScope == userID && filter.Matches(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateTransaction(ctx context.Context, userID, id string, patch model.Patch) (model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, row := range f.rows {
		if row.ID == id && row.OwnerScope == userID {
			patched, err := patch.Apply(row)
			if err != nil {
				return model.Transaction{}, err
			}
			f.rows[i] = patched
			return patched, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("%w: %s", model.ErrNotFound, id)
}

func (f *fakeRepo) DeleteTransaction(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, row := range f.rows {
		if row.ID == id && row.OwnerScope == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", model.ErrNotFound, id)
}

type staticRates exchange.RateTable

func (s staticRates) Rates() (exchange.RateTable, error) {
	return exchange.RateTable(s), nil
}

func testRates() staticRates {
	usdkrw, _ := decimal.NewFromString("1350")
	return staticRates{"USD": {"KRW": usdkrw}}
}

type fixture struct {
	ledger   *Ledger
	guest    *localstore.Store
	remote   *fakeRepo
	observer *session.Observer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	guest := localstore.New(filepath.Join(t.TempDir(), "guest.json"))
	remote := &fakeRepo{failOn: map[int]error{}}
	observer := session.NewObserver()
	ledger := NewLedger(guest, remote, observer, testRates(), zerolog.Nop())
	observer.Subscribe(ledger)
	return &fixture{ledger: ledger, guest: guest, remote: remote, observer: observer}
}

func expense(amount int64, category, currency string) model.Transaction {
	return model.Transaction{
		Kind:       model.KindExpense,
		Amount:     decimal.NewFromInt(amount),
		Currency:   currency,
		Category:   category,
		OccurredAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}
}

func income(amount int64, category, currency string) model.Transaction {
	t := expense(amount, category, currency)
	t.Kind = model.KindIncome
	return t
}

func TestAddRoutesToGuestStoreWhileAnonymous(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	stored, err := fx.ledger.AddTransaction(ctx, expense(75000, "숙박", "KRW"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.OwnerScope != model.ScopeGuest {
		t.Errorf("OwnerScope = %q, want guest", stored.OwnerScope)
	}

	guestRecords, _ := fx.guest.List()
	if len(guestRecords) != 1 {
		t.Errorf("guest store has %d records, want 1", len(guestRecords))
	}
	if len(fx.remote.rows) != 0 {
		t.Errorf("remote store touched while anonymous: %v", fx.remote.rows)
	}
}

func TestAddRoutesToRemoteWhileAuthenticated(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.observer.SignIn("u1")

	stored, err := fx.ledger.AddTransaction(ctx, income(3000000, "급여", "KRW"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.OwnerScope != "u1" {
		t.Errorf("OwnerScope = %q, want u1", stored.OwnerScope)
	}
	if stored.ID == "" {
		t.Error("expected a server-assigned id")
	}

	guestRecords, _ := fx.guest.List()
	if len(guestRecords) != 0 {
		t.Errorf("guest store touched while authenticated: %v", guestRecords)
	}
}

func TestAddValidation(t *testing.T) {
	fx := newFixture(t)
	// income-only category on an expense record
	if _, err := fx.ledger.AddTransaction(context.Background(), expense(1000, "급여", "KRW")); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestRemoteFailureIsNotRoutedToGuestStore(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.observer.SignIn("u1")
	fx.remote.failOn[1] = fmt.Errorf("%w: backend down", model.ErrStoreUnavailable)

	_, err := fx.ledger.AddTransaction(ctx, expense(75000, "숙박", "KRW"))
	if !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	// A failed remote write must never land in the guest store: that would
	// silently change the record's ownership.
	guestRecords, listErr := fx.guest.List()
	if listErr != nil {
		t.Fatal(listErr)
	}
	if len(guestRecords) != 0 {
		t.Errorf("guest store used as fallback: %v", guestRecords)
	}
	if len(fx.remote.rows) != 0 {
		t.Errorf("remote store holds %v after a failed create", fx.remote.rows)
	}
}

func TestRoundTrip(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	in := expense(75000, "숙박", "KRW")
	in.Description = "호텔 숙박"
	stored, err := fx.ledger.AddTransaction(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	listed, err := fx.ledger.ListTransactions(ctx, model.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d records, want 1", len(listed))
	}
	got := listed[0]
	if got.ID != stored.ID || got.Kind != in.Kind || !got.Amount.Equal(in.Amount) ||
		got.Currency != in.Currency || got.Category != in.Category ||
		got.Description != in.Description || !got.OccurredAt.Equal(in.OccurredAt) {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, got)
	}
}

func TestUpdateAndDeleteOutsideScope(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// u1 owns a remote record
	fx.observer.SignIn("u1")
	remote, err := fx.ledger.AddTransaction(ctx, expense(5000, "식비", "KRW"))
	if err != nil {
		t.Fatal(err)
	}

	// back to guest mode; the same id must be invisible
	fx.observer.SignOut()
	if _, err := fx.ledger.UpdateTransaction(ctx, remote.ID, model.Patch{}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := fx.ledger.DeleteTransaction(ctx, remote.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListFilter(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.ledger.AddTransaction(ctx, expense(1000, "식비", "KRW"))
	fx.ledger.AddTransaction(ctx, income(2000, "급여", "KRW"))

	listed, err := fx.ledger.ListTransactions(ctx, model.Filter{Kind: model.KindIncome})
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].Kind != model.KindIncome {
		t.Errorf("filter by kind failed: %v", listed)
	}
}

func TestSummarize(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.ledger.AddTransaction(ctx, income(3000000, "급여", "KRW"))
	fx.ledger.AddTransaction(ctx, expense(75000, "숙박", "KRW"))
	fx.ledger.AddTransaction(ctx, expense(10, "식비", "USD")) // 13500 KRW

	summary, err := fx.ledger.Summarize(ctx, model.Filter{}, "KRW")
	if err != nil {
		t.Fatal(err)
	}
	if want := decimal.NewFromInt(3000000); !summary.TotalIncome.Equal(want) {
		t.Errorf("TotalIncome = %s, want %s", summary.TotalIncome, want)
	}
	if want := decimal.NewFromInt(88500); !summary.TotalExpense.Equal(want) {
		t.Errorf("TotalExpense = %s, want %s", summary.TotalExpense, want)
	}
	if want := decimal.NewFromInt(2911500); !summary.Balance.Equal(want) {
		t.Errorf("Balance = %s, want %s", summary.Balance, want)
	}
	if summary.Unconvertible != 0 {
		t.Errorf("Unconvertible = %d, want 0", summary.Unconvertible)
	}
	if want := decimal.NewFromInt(75000); !summary.ExpenseByCategory["숙박"].Equal(want) {
		t.Errorf("ExpenseByCategory[숙박] = %s, want %s", summary.ExpenseByCategory["숙박"], want)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.ledger.AddTransaction(ctx, income(100, "급여", "KRW"))
	fx.ledger.AddTransaction(ctx, expense(40, "식비", "KRW"))

	first, err := fx.ledger.Summarize(ctx, model.Filter{}, "KRW")
	if err != nil {
		t.Fatal(err)
	}
	second, err := fx.ledger.Summarize(ctx, model.Filter{}, "KRW")
	if err != nil {
		t.Fatal(err)
	}
	if !first.TotalIncome.Equal(second.TotalIncome) ||
		!first.TotalExpense.Equal(second.TotalExpense) ||
		!first.Balance.Equal(second.Balance) ||
		first.Unconvertible != second.Unconvertible {
		t.Errorf("summarize mutated state:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSummarizeUnconvertible(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.ledger.AddTransaction(ctx, expense(1000, "식비", "KRW"))
	fx.ledger.AddTransaction(ctx, expense(50, "교통", "GBP")) // no GBP rate in the table

	summary, err := fx.ledger.Summarize(ctx, model.Filter{}, "KRW")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Unconvertible != 1 {
		t.Errorf("Unconvertible = %d, want 1", summary.Unconvertible)
	}
	if want := decimal.NewFromInt(1000); !summary.TotalExpense.Equal(want) {
		t.Errorf("TotalExpense = %s, want %s (excluded record must not be summed)", summary.TotalExpense, want)
	}
}

func TestScopeIsolation(t *testing.T) {
	dir := t.TempDir()
	remote := &fakeRepo{failOn: map[int]error{}}
	ctx := context.Background()

	guestObserver := session.NewObserver()
	guestLedger := NewLedger(localstore.New(filepath.Join(dir, "guest.json")), remote, guestObserver, testRates(), zerolog.Nop())
	guestObserver.Subscribe(guestLedger)

	authObserver := session.NewObserver()
	authObserver.Seed(session.Authenticated("u1"))
	authLedger := NewLedger(localstore.New(filepath.Join(dir, "guest2.json")), remote, authObserver, testRates(), zerolog.Nop())
	authObserver.Subscribe(authLedger)

	if _, err := guestLedger.AddTransaction(ctx, expense(1000, "식비", "KRW")); err != nil {
		t.Fatal(err)
	}
	if _, err := authLedger.AddTransaction(ctx, expense(2000, "교통", "KRW")); err != nil {
		t.Fatal(err)
	}

	guestList, _ := guestLedger.ListTransactions(ctx, model.Filter{})
	authList, _ := authLedger.ListTransactions(ctx, model.Filter{})
	if len(guestList) != 1 || guestList[0].Category != "식비" {
		t.Errorf("guest sees: %v", guestList)
	}
	if len(authList) != 1 || authList[0].Category != "교통" {
		t.Errorf("authenticated sees: %v", authList)
	}
}
