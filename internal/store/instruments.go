package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finfolio/folio/internal/domain"
)

// ListInstruments returns every instrument ordered by symbol.
func (s *PgStore) ListInstruments(ctx context.Context) ([]domain.Instrument, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, symbol, description, asset_class, currency, wallet_address
		 FROM instruments
		 ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("listing instruments: %w", err)
	}
	defer rows.Close()

	var instruments []domain.Instrument
	for rows.Next() {
		var ins domain.Instrument
		var class string
		if err := rows.Scan(&ins.ID, &ins.Symbol, &ins.Description, &class, &ins.Currency, &ins.WalletAddress); err != nil {
			return nil, fmt.Errorf("scanning instrument: %w", err)
		}
		if ins.AssetClass, err = domain.ParseAssetClass(class); err != nil {
			return nil, fmt.Errorf("instrument %d: %w", ins.ID, err)
		}
		instruments = append(instruments, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating instruments: %w", err)
	}
	return instruments, nil
}

// GetInstrument returns a single instrument by ID.
func (s *PgStore) GetInstrument(ctx context.Context, id int64) (domain.Instrument, error) {
	var ins domain.Instrument
	var class string
	err := s.pool.QueryRow(ctx,
		`SELECT id, symbol, description, asset_class, currency, wallet_address
		 FROM instruments
		 WHERE id = $1`, id).Scan(&ins.ID, &ins.Symbol, &ins.Description, &class, &ins.Currency, &ins.WalletAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Instrument{}, ErrNotFound
		}
		return domain.Instrument{}, fmt.Errorf("getting instrument %d: %w", id, err)
	}
	if ins.AssetClass, err = domain.ParseAssetClass(class); err != nil {
		return domain.Instrument{}, fmt.Errorf("instrument %d: %w", id, err)
	}
	return ins, nil
}

// InsertInstrument stores a new instrument and returns its assigned ID.
func (s *PgStore) InsertInstrument(ctx context.Context, ins domain.Instrument) (int64, error) {
	if err := ins.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO instruments (symbol, description, asset_class, currency, wallet_address)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		ins.Symbol, ins.Description, string(ins.AssetClass), ins.Currency, ins.WalletAddress).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting instrument %s: %w", ins.Symbol, err)
	}
	return id, nil
}
