package repository

import (
	"context"

	"github.com/hanwool/gagyebu/internal/model"
)

// Repository is the remote ledger client. Every call is scoped to one
// authenticated user's records; the backend is the authority for access
// control and this client never re-derives authorization.
type Repository interface {
	// CreateTransaction stores a new record. The server assigns id and
	// created_at; both are echoed back into the passed record.
	CreateTransaction(ctx context.Context, t *model.Transaction) error
	GetTransactions(ctx context.Context, userID string, filter model.Filter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, patch model.Patch) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}
