package model

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind separates income from expense records.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ScopeGuest is the owner scope of records written before sign-in.
// Authenticated records carry the user id as their scope instead.
const ScopeGuest = "guest"

// MaxDescriptionLen bounds the free-text description, in runes.
const MaxDescriptionLen = 200

// Transaction is one ledger record. Kind and Currency are fixed at creation;
// edits go through Patch, which cannot touch them. OwnerScope is stamped by
// the storage layer that writes the record, never by the caller.
type Transaction struct {
	ID         string `json:"id,omitempty"`
	OwnerScope string `json:"owner_scope"`
	// ClientID keeps the original client-generated id when a guest record
	// is migrated to the remote store, so a retried migration can be
	// deduplicated server-side.
	ClientID    string          `json:"client_id,omitempty"`
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}

// GenerateID assigns a new UUID if the transaction has none yet.
// Guest records get a client-generated id; remote records keep the
// server-assigned one.
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// Validate checks the record against the data-model invariants.
// All violations come back wrapped in ErrValidation.
func (t *Transaction) Validate() error {
	if t.Kind != KindIncome && t.Kind != KindExpense {
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, t.Kind)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount %s is negative", ErrValidation, t.Amount)
	}
	if t.Currency == "" {
		return fmt.Errorf("%w: currency is empty", ErrValidation)
	}
	if !ValidCategory(t.Kind, t.Category) {
		return fmt.Errorf("%w: category %q is not valid for kind %q", ErrValidation, t.Category, t.Kind)
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrValidation, MaxDescriptionLen)
	}
	if t.OccurredAt.IsZero() {
		return fmt.Errorf("%w: occurred_at is not set", ErrValidation)
	}
	return nil
}

// Patch carries the editable fields of a transaction. Nil fields are left
// untouched. Kind and Currency are immutable and deliberately absent.
type Patch struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	OccurredAt  *time.Time
}

// Apply returns a copy of t with the patch applied and re-validated.
func (p Patch) Apply(t Transaction) (Transaction, error) {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.OccurredAt != nil {
		t.OccurredAt = *p.OccurredAt
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Filter narrows a transaction listing by date range and/or kind.
// Zero values leave the corresponding dimension unrestricted.
type Filter struct {
	From *time.Time
	To   *time.Time
	Kind Kind
}

// Matches reports whether the record falls inside the filter.
// Both bounds are inclusive and compare against OccurredAt.
func (f Filter) Matches(t Transaction) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.From != nil && t.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && t.OccurredAt.After(*f.To) {
		return false
	}
	return true
}
