package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/finfolio/folio/internal/domain"
	"github.com/finfolio/folio/internal/valuation"
)

// RecordSource loads the full record set the valuation replays.
type RecordSource interface {
	Records(ctx context.Context) (domain.Records, error)
}

// Valuer computes a portfolio valuation from records.
type Valuer interface {
	Value(records domain.Records, owner, reportingCurrency string, asOf time.Time) (valuation.Snapshot, error)
}

// Service manages snapshot generation and retrieval.
type Service struct {
	records  RecordSource
	valuer   Valuer
	repo     Repository
	currency string
}

// NewService creates a new snapshot Service. Snapshots are valued in the
// given reporting currency.
func NewService(records RecordSource, valuer Valuer, repo Repository, reportingCurrency string) *Service {
	if records == nil {
		panic("snapshot: nil record source")
	}
	if valuer == nil {
		panic("snapshot: nil valuer")
	}
	if repo == nil {
		panic("snapshot: nil repository")
	}
	return &Service{records: records, valuer: valuer, repo: repo, currency: reportingCurrency}
}

// Generate values the owner's portfolio as of the given date and stores the
// result, overwriting any snapshot already stored for that owner and date.
func (s *Service) Generate(ctx context.Context, owner string, date time.Time) (valuation.Snapshot, error) {
	records, err := s.records.Records(ctx)
	if err != nil {
		return valuation.Snapshot{}, fmt.Errorf("loading records: %w", err)
	}

	value, err := s.valuer.Value(records, owner, s.currency, date)
	if err != nil {
		return valuation.Snapshot{}, fmt.Errorf("valuing portfolio: %w", err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return valuation.Snapshot{}, fmt.Errorf("marshaling valuation: %w", err)
	}

	if err := s.repo.Save(ctx, owner, domain.DayOf(date), data); err != nil {
		return valuation.Snapshot{}, fmt.Errorf("saving snapshot: %w", err)
	}

	return value, nil
}

// GetLatest retrieves the most recent snapshot for the owner.
func (s *Service) GetLatest(ctx context.Context, owner string) (*Snapshot, error) {
	return s.repo.GetLatest(ctx, owner)
}

// GetByDate retrieves a snapshot for a specific date.
func (s *Service) GetByDate(ctx context.Context, owner string, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, owner, date)
}

// List retrieves recent snapshots.
func (s *Service) List(ctx context.Context, owner string, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, owner, limit)
}
