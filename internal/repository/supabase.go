package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/supabase-community/supabase-go"

	"github.com/hanwool/gagyebu/internal/model"
)

const transactionsTable = "transactions"

// SupabaseRepository implements Repository against a Supabase project.
// Row-level security on the transactions table is the authoritative access
// control; the owner_scope predicates here only keep queries cheap and honest.
type SupabaseRepository struct {
	client *supabase.Client
	log    zerolog.Logger
}

func NewSupabaseRepository(url, key string, log zerolog.Logger) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseRepository{
		client: client,
		log:    log.With().Str("component", "supabase").Logger(),
	}, nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	// Fail fast before the round trip; the backend re-checks authoritatively.
	if err := t.Validate(); err != nil {
		return err
	}

	row := *t
	row.ID = "" // server-assigned
	data, _, err := r.client.From(transactionsTable).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		r.log.Error().Err(err).Str("scope", t.OwnerScope).Msg("create transaction failed")
		return fmt.Errorf("%w: create transaction: %v", model.ErrStoreUnavailable, err)
	}

	var created []model.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("%w: parse created transaction: %v", model.ErrStoreUnavailable, err)
	}
	if len(created) > 0 {
		t.ID = created[0].ID
		t.CreatedAt = created[0].CreatedAt
	}
	r.log.Debug().Str("id", t.ID).Str("scope", t.OwnerScope).Msg("transaction created")
	return nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, userID string, filter model.Filter) ([]model.Transaction, error) {
	query := r.client.From(transactionsTable).
		Select("*", "", false).
		Eq("owner_scope", userID)

	if filter.From != nil {
		query = query.Gte("occurred_at", filter.From.Format("2006-01-02T15:04:05Z07:00"))
	}
	if filter.To != nil {
		query = query.Lte("occurred_at", filter.To.Format("2006-01-02T15:04:05Z07:00"))
	}
	if filter.Kind != "" {
		query = query.Eq("kind", string(filter.Kind))
	}

	// created_at ascending keeps listings in write order, matching the
	// guest store's insertion-order contract.
	query = query.Order("created_at.asc", nil)

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %v", model.ErrStoreUnavailable, err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("%w: parse transactions: %v", model.ErrStoreUnavailable, err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) UpdateTransaction(ctx context.Context, userID, id string, patch model.Patch) (model.Transaction, error) {
	existing, err := r.getByID(ctx, userID, id)
	if err != nil {
		return model.Transaction{}, err
	}

	patched, err := patch.Apply(existing)
	if err != nil {
		return model.Transaction{}, err
	}

	_, _, err = r.client.From(transactionsTable).
		Update(patched, "", "").
		Eq("id", id).
		Eq("owner_scope", userID).
		Execute()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: update transaction: %v", model.ErrStoreUnavailable, err)
	}
	return patched, nil
}

func (r *SupabaseRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	if _, err := r.getByID(ctx, userID, id); err != nil {
		return err
	}

	_, _, err := r.client.From(transactionsTable).
		Delete("", "").
		Eq("id", id).
		Eq("owner_scope", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: delete transaction: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

// getByID fetches one record within the user's scope. A record that exists
// under another scope is indistinguishable from a missing one on purpose.
func (r *SupabaseRepository) getByID(ctx context.Context, userID, id string) (model.Transaction, error) {
	data, _, err := r.client.From(transactionsTable).
		Select("*", "", false).
		Eq("id", id).
		Eq("owner_scope", userID).
		Execute()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: get transaction: %v", model.ErrStoreUnavailable, err)
	}

	var rows []model.Transaction
	if err := json.Unmarshal(data, &rows); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: parse transaction: %v", model.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return model.Transaction{}, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	return rows[0], nil
}
