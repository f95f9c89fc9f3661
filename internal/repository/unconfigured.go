package repository

import (
	"context"
	"fmt"

	"github.com/hanwool/gagyebu/internal/model"
)

// Unconfigured stands in for the remote client when no backend credentials
// are present. Guest-mode operation never touches it; authenticated calls
// surface the missing configuration as a store failure instead of silently
// falling back to the guest store.
type Unconfigured struct{}

func (Unconfigured) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	return errUnconfigured()
}

func (Unconfigured) GetTransactions(ctx context.Context, userID string, filter model.Filter) ([]model.Transaction, error) {
	return nil, errUnconfigured()
}

func (Unconfigured) UpdateTransaction(ctx context.Context, userID, id string, patch model.Patch) (model.Transaction, error) {
	return model.Transaction{}, errUnconfigured()
}

func (Unconfigured) DeleteTransaction(ctx context.Context, userID, id string) error {
	return errUnconfigured()
}

func errUnconfigured() error {
	return fmt.Errorf("%w: remote backend not configured (set SUPABASE_URL and SUPABASE_KEY)", model.ErrStoreUnavailable)
}
