// Package worker runs the periodic snapshot loop.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/finfolio/folio/internal/valuation"
)

// SnapshotGenerator defines the interface for generating snapshots.
type SnapshotGenerator interface {
	Generate(ctx context.Context, owner string, date time.Time) (valuation.Snapshot, error)
}

// AfterSnapshotHook is called after each successful snapshot generation.
type AfterSnapshotHook interface {
	Export(ctx context.Context, snap valuation.Snapshot) error
}

// SnapshotWorker periodically generates net worth snapshots for a fixed
// set of owners.
type SnapshotWorker struct {
	generator SnapshotGenerator
	owners    []string
	interval  time.Duration
	hook      AfterSnapshotHook // optional
}

// NewSnapshotWorker creates a new SnapshotWorker with an optional post-generation hook.
func NewSnapshotWorker(generator SnapshotGenerator, owners []string, interval time.Duration, hook AfterSnapshotHook) *SnapshotWorker {
	return &SnapshotWorker{
		generator: generator,
		owners:    owners,
		interval:  interval,
		hook:      hook,
	}
}

// generateAll snapshots every configured owner for the current UTC date.
func (w *SnapshotWorker) generateAll(ctx context.Context) {
	date := utcDate()
	for _, owner := range w.owners {
		snap, err := w.generator.Generate(ctx, owner, date)
		if err != nil {
			slog.Error("SnapshotWorker: generation failed", "owner", owner, "error", err)
			continue
		}
		slog.Info("SnapshotWorker: generation completed", "owner", owner)
		w.runHook(ctx, snap)
	}
}

// runHook calls the post-generation hook if one is configured.
func (w *SnapshotWorker) runHook(ctx context.Context, snap valuation.Snapshot) {
	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx, snap); err != nil {
		slog.Error("SnapshotWorker: export hook failed", "owner", snap.Owner, "error", err)
	} else {
		slog.Info("SnapshotWorker: export hook completed", "owner", snap.Owner)
	}
}

// utcDate returns the current date normalized to midnight UTC.
func utcDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Run starts the snapshot worker loop. It blocks until the context is cancelled.
func (w *SnapshotWorker) Run(ctx context.Context) {
	if len(w.owners) == 0 {
		slog.Warn("SnapshotWorker: no owners configured, not starting")
		return
	}
	slog.Info("SnapshotWorker: starting", "owners", w.owners, "interval", w.interval)

	// Generate immediately on startup
	w.generateAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("SnapshotWorker: shutting down")
			return
		case <-ticker.C:
			w.generateAll(ctx)
		}
	}
}
