package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

// ListDividends returns every dividend ordered by date then ID.
func (s *PgStore) ListDividends(ctx context.Context) ([]domain.Dividend, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, instrument_id, dividend_date, amount::text, note, owner
		 FROM dividends
		 ORDER BY dividend_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing dividends: %w", err)
	}
	defer rows.Close()

	var dividends []domain.Dividend
	for rows.Next() {
		var d domain.Dividend
		var amount string
		if err := rows.Scan(&d.ID, &d.InstrumentID, &d.Date, &amount, &d.Note, &d.Owner); err != nil {
			return nil, fmt.Errorf("scanning dividend: %w", err)
		}
		if d.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("dividend %d amount: %w", d.ID, err)
		}
		dividends = append(dividends, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dividends: %w", err)
	}
	return dividends, nil
}

// InsertDividend stores a new dividend and returns its assigned ID.
func (s *PgStore) InsertDividend(ctx context.Context, d domain.Dividend) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO dividends (instrument_id, dividend_date, amount, note, owner)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		d.InstrumentID, d.Date, d.Amount.String(), d.Note, d.Owner).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting dividend: %w", err)
	}
	return id, nil
}
