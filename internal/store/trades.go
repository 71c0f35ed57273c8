package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

// ListTrades returns every trade event ordered by date then ID.
func (s *PgStore) ListTrades(ctx context.Context) ([]domain.TradeEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, instrument_id, owner, trade_date, side, price::text, quantity::text, note, currency
		 FROM trade_events
		 ORDER BY trade_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing trades: %w", err)
	}
	defer rows.Close()

	var trades []domain.TradeEvent
	for rows.Next() {
		var tr domain.TradeEvent
		var side, price, quantity string
		if err := rows.Scan(&tr.ID, &tr.InstrumentID, &tr.Owner, &tr.Date, &side, &price, &quantity, &tr.Note, &tr.Currency); err != nil {
			return nil, fmt.Errorf("scanning trade: %w", err)
		}
		if tr.Side, err = domain.ParseTradeSide(side); err != nil {
			return nil, fmt.Errorf("trade %d: %w", tr.ID, err)
		}
		if tr.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("trade %d price: %w", tr.ID, err)
		}
		if tr.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("trade %d quantity: %w", tr.ID, err)
		}
		trades = append(trades, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trades: %w", err)
	}
	return trades, nil
}

// InsertTrade stores a new trade event and returns its assigned ID.
func (s *PgStore) InsertTrade(ctx context.Context, tr domain.TradeEvent) (int64, error) {
	if err := tr.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO trade_events (instrument_id, owner, trade_date, side, price, quantity, note, currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		tr.InstrumentID, tr.Owner, tr.Date, string(tr.Side),
		tr.Price.String(), tr.Quantity.String(), tr.Note, tr.Currency).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting trade: %w", err)
	}
	return id, nil
}

// UpdateTrade rewrites an existing trade event in place. Derived positions
// need no separate fixup because the ledger replays from events on read.
func (s *PgStore) UpdateTrade(ctx context.Context, tr domain.TradeEvent) error {
	if err := tr.Validate(); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE trade_events
		 SET instrument_id = $2, owner = $3, trade_date = $4, side = $5,
		     price = $6, quantity = $7, note = $8, currency = $9
		 WHERE id = $1`,
		tr.ID, tr.InstrumentID, tr.Owner, tr.Date, string(tr.Side),
		tr.Price.String(), tr.Quantity.String(), tr.Note, tr.Currency)
	if err != nil {
		return fmt.Errorf("updating trade %d: %w", tr.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
