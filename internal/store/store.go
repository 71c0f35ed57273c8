// Package store persists portfolio records in PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finfolio/folio/internal/domain"
)

// ErrNotFound indicates that the requested record was not found.
var ErrNotFound = errors.New("record not found")

// PgStore implements record storage with PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a new PostgreSQL record store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// Records loads the full record set used by the replay engine.
func (s *PgStore) Records(ctx context.Context) (domain.Records, error) {
	var rec domain.Records
	var err error

	if rec.Instruments, err = s.ListInstruments(ctx); err != nil {
		return domain.Records{}, fmt.Errorf("loading instruments: %w", err)
	}
	if rec.Trades, err = s.ListTrades(ctx); err != nil {
		return domain.Records{}, fmt.Errorf("loading trades: %w", err)
	}
	if rec.Accounts, err = s.ListAccounts(ctx); err != nil {
		return domain.Records{}, fmt.Errorf("loading cash accounts: %w", err)
	}
	if rec.CashEvents, err = s.ListCashEvents(ctx); err != nil {
		return domain.Records{}, fmt.Errorf("loading cash events: %w", err)
	}
	if rec.Bonds, err = s.ListBonds(ctx); err != nil {
		return domain.Records{}, fmt.Errorf("loading bonds: %w", err)
	}
	if rec.Dividends, err = s.ListDividends(ctx); err != nil {
		return domain.Records{}, fmt.Errorf("loading dividends: %w", err)
	}

	return rec, nil
}
