package service

import (
	"context"
	"fmt"
)

// MigrationFailure records one guest record that could not be created
// remotely. The record stays in the guest store for a later retry.
type MigrationFailure struct {
	ID  string
	Err error
}

// MigrationReport is the outcome of one guest drain. Failures are collected
// per record rather than raised as one aggregate error, so a caller can show
// partial success.
type MigrationReport struct {
	Attempted int
	Migrated  int
	Failures  []MigrationFailure
	Cleared   bool
	// Err is a drain-level failure: the guest store could not be read, or
	// could not be cleared after a full migration. Per-record problems go
	// to Failures instead.
	Err error
}

// SessionStarted implements session.Handler. It drains the guest store into
// the newly authenticated user's remote scope. The session observer
// deduplicates repeated sign-in events, so this runs once per logical
// session start.
func (l *Ledger) SessionStarted(userID string) {
	report, err := l.migrateGuestRecords(context.Background(), userID)
	if err != nil {
		l.log.Error().Err(err).Str("user", userID).Msg("guest migration failed")
	}
	l.reportMu.Lock()
	l.lastMigration = report
	l.reportMu.Unlock()
}

// SessionEnded implements session.Handler. Routing falls back to guest mode
// on the next operation; stored data is not touched.
func (l *Ledger) SessionEnded() {
	l.log.Debug().Msg("session ended, routing back to guest store")
}

// LastMigration returns the report of the most recent guest drain, or nil if
// none has run in this process.
func (l *Ledger) LastMigration() *MigrationReport {
	l.reportMu.Lock()
	defer l.reportMu.Unlock()
	return l.lastMigration
}

// migrateGuestRecords moves every guest record into the user's remote scope,
// in original insertion order. It is best-effort per record: one failure is
// recorded and the remaining records are still attempted. The guest store is
// cleared only after every record succeeded; otherwise it is left intact so
// the next sign-in can retry the stragglers.
func (l *Ledger) migrateGuestRecords(ctx context.Context, userID string) (*MigrationReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.guest.List()
	if err != nil {
		report := &MigrationReport{Err: fmt.Errorf("failed to read guest store: %w", err)}
		return report, report.Err
	}

	report := &MigrationReport{Attempted: len(records)}
	if len(records) == 0 {
		return report, nil
	}

	l.log.Info().Int("records", len(records)).Str("user", userID).Msg("migrating guest records")
	for _, guest := range records {
		remote := guest
		remote.ClientID = guest.ID
		remote.ID = ""
		remote.OwnerScope = userID

		if err := l.remote.CreateTransaction(ctx, &remote); err != nil {
			l.log.Warn().Err(err).Str("id", guest.ID).Msg("guest record migration failed")
			report.Failures = append(report.Failures, MigrationFailure{ID: guest.ID, Err: err})
			continue
		}
		report.Migrated++
	}

	if len(report.Failures) > 0 {
		l.log.Warn().Int("failed", len(report.Failures)).Int("migrated", report.Migrated).
			Msg("guest store kept for retry after partial migration")
		return report, nil
	}

	if err := l.guest.Clear(); err != nil {
		report.Err = fmt.Errorf("failed to clear guest store after migration: %w", err)
		return report, report.Err
	}
	report.Cleared = true
	l.log.Info().Int("migrated", report.Migrated).Msg("guest migration complete")
	return report, nil
}
