package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

// ListBonds returns every bond ordered by purchase date then ID.
func (s *PgStore) ListBonds(ctx context.Context) ([]domain.Bond, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, face_value::text, coupon_rate::text, maturity_date, purchase_date,
		        quantity::text, cost_basis::text, owner
		 FROM bonds
		 ORDER BY purchase_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing bonds: %w", err)
	}
	defer rows.Close()

	var bonds []domain.Bond
	for rows.Next() {
		var b domain.Bond
		var face, coupon, quantity, cost string
		if err := rows.Scan(&b.ID, &b.Name, &face, &coupon, &b.MaturityDate, &b.PurchaseDate, &quantity, &cost, &b.Owner); err != nil {
			return nil, fmt.Errorf("scanning bond: %w", err)
		}
		if b.FaceValue, err = decimal.NewFromString(face); err != nil {
			return nil, fmt.Errorf("bond %d face value: %w", b.ID, err)
		}
		if b.CouponRate, err = decimal.NewFromString(coupon); err != nil {
			return nil, fmt.Errorf("bond %d coupon rate: %w", b.ID, err)
		}
		if b.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("bond %d quantity: %w", b.ID, err)
		}
		if b.CostBasis, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("bond %d cost basis: %w", b.ID, err)
		}
		bonds = append(bonds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bonds: %w", err)
	}
	return bonds, nil
}

// InsertBond stores a new bond and returns its assigned ID.
func (s *PgStore) InsertBond(ctx context.Context, b domain.Bond) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO bonds (name, face_value, coupon_rate, maturity_date, purchase_date, quantity, cost_basis, owner)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		b.Name, b.FaceValue.String(), b.CouponRate.String(), b.MaturityDate, b.PurchaseDate,
		b.Quantity.String(), b.CostBasis.String(), b.Owner).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting bond %s: %w", b.Name, err)
	}
	return id, nil
}
