package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

// ListAccounts returns every cash account ordered by name.
func (s *PgStore) ListAccounts(ctx context.Context) ([]domain.CashAccount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, currency, owner
		 FROM cash_accounts
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing cash accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.CashAccount
	for rows.Next() {
		var acc domain.CashAccount
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Currency, &acc.Owner); err != nil {
			return nil, fmt.Errorf("scanning cash account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cash accounts: %w", err)
	}
	return accounts, nil
}

// InsertAccount stores a new cash account and returns its assigned ID.
func (s *PgStore) InsertAccount(ctx context.Context, acc domain.CashAccount) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cash_accounts (name, currency, owner)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		acc.Name, acc.Currency, acc.Owner).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting cash account %s: %w", acc.Name, err)
	}
	return id, nil
}

// ListCashEvents returns every cash event ordered by date then ID.
func (s *PgStore) ListCashEvents(ctx context.Context) ([]domain.CashEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, event_date, kind, from_account, to_account, amount::text, conversion_rate::text
		 FROM cash_events
		 ORDER BY event_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing cash events: %w", err)
	}
	defer rows.Close()

	var events []domain.CashEvent
	for rows.Next() {
		var ev domain.CashEvent
		var kind, amount string
		var rate *string
		if err := rows.Scan(&ev.ID, &ev.Date, &kind, &ev.FromAccount, &ev.ToAccount, &amount, &rate); err != nil {
			return nil, fmt.Errorf("scanning cash event: %w", err)
		}
		if ev.Kind, err = domain.ParseCashEventKind(kind); err != nil {
			return nil, fmt.Errorf("cash event %d: %w", ev.ID, err)
		}
		if ev.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("cash event %d amount: %w", ev.ID, err)
		}
		if rate != nil {
			r, err := decimal.NewFromString(*rate)
			if err != nil {
				return nil, fmt.Errorf("cash event %d conversion rate: %w", ev.ID, err)
			}
			ev.ConversionRate = &r
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cash events: %w", err)
	}
	return events, nil
}

// InsertCashEvent stores a new cash event and returns its assigned ID.
func (s *PgStore) InsertCashEvent(ctx context.Context, ev domain.CashEvent) (int64, error) {
	if err := ev.Validate(); err != nil {
		return 0, err
	}
	var rate *string
	if ev.ConversionRate != nil {
		v := ev.ConversionRate.String()
		rate = &v
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cash_events (event_date, kind, from_account, to_account, amount, conversion_rate)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		ev.Date, string(ev.Kind), ev.FromAccount, ev.ToAccount, ev.Amount.String(), rate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting cash event: %w", err)
	}
	return id, nil
}
