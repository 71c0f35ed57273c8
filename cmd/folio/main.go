package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/finfolio/folio/internal/api"
	"github.com/finfolio/folio/internal/config"
	"github.com/finfolio/folio/internal/currency"
	"github.com/finfolio/folio/internal/database"
	"github.com/finfolio/folio/internal/domain"
	"github.com/finfolio/folio/internal/export"
	"github.com/finfolio/folio/internal/quote"
	"github.com/finfolio/folio/internal/report"
	"github.com/finfolio/folio/internal/snapshot"
	"github.com/finfolio/folio/internal/store"
	"github.com/finfolio/folio/internal/valuation"
	"github.com/finfolio/folio/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// app bundles the wired services shared by all commands.
type app struct {
	cfg        config.Config
	pool       *pgxpool.Pool
	store      *store.PgStore
	valuations *valuation.Service
	reports    *report.Service
	snapshots  *snapshot.Service
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cliApp := &cli.App{
		Name:  "folio",
		Usage: "portfolio accounting and reporting service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the periodic snapshot worker",
				Action: runServe,
			},
			{
				Name:  "snapshot",
				Usage: "generate a net worth snapshot for one owner",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "owner", Usage: "portfolio owner", Required: true},
					&cli.StringFlag{Name: "date", Usage: "snapshot date (YYYY-MM-DD), defaults to today"},
				},
				Action: runSnapshot,
			},
			{
				Name:  "export",
				Usage: "export an owner's financial statements to a spreadsheet",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "owner", Usage: "portfolio owner", Required: true},
				},
				Action: runExport,
			},
		},
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup connects to the database, runs migrations, and wires the services.
// The caller owns the returned pool.
func setup(ctx context.Context) (*app, error) {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	quotes := quote.NewCached(quote.Deterministic{}, cfg.QuoteCacheTTL)
	converter := currency.NewDefaultConverter()

	pgStore := store.NewPgStore(pool)
	valuations := valuation.NewService(quotes, converter)
	reports := report.NewService(quotes, converter)
	snapshots := snapshot.NewService(pgStore, valuations, snapshot.NewPgRepository(pool), cfg.ReportingCurrency)

	return &app{
		cfg:        cfg,
		pool:       pool,
		store:      pgStore,
		valuations: valuations,
		reports:    reports,
		snapshots:  snapshots,
	}, nil
}

// newSheetWriter picks the export destination: Google Sheets when a
// spreadsheet ID is configured, an .xlsx file on disk otherwise.
func (a *app) newSheetWriter(ctx context.Context) (export.SheetWriter, error) {
	if a.cfg.SheetsSpreadsheetID == "" {
		return export.NewExcelWriter(a.cfg.XLSXPath), nil
	}
	creds, err := os.ReadFile(a.cfg.SheetsCredentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("reading sheets credentials: %w", err)
	}
	return export.NewSheetsWriter(ctx, a.cfg.SheetsSpreadsheetID, string(creds))
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.pool.Close()

	// Snapshot worker, with statement export after each run when Google
	// Sheets is configured
	var hook worker.AfterSnapshotHook
	if a.cfg.SheetsSpreadsheetID != "" {
		writer, err := a.newSheetWriter(ctx)
		if err != nil {
			return err
		}
		hook = export.NewService(a.store, a.reports, writer, a.cfg.ReportingCurrency)
	}
	snapshotWorker := worker.NewSnapshotWorker(a.snapshots, a.cfg.SnapshotOwners, a.cfg.SnapshotInterval, hook)
	go snapshotWorker.Run(ctx)

	if a.cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, generate endpoint is unprotected")
	}

	handler := api.NewHandler(a.store, a.valuations, a.reports, a.snapshots, a.cfg.ReportingCurrency)
	srv := api.NewServer(a.cfg.HTTPPort, handler, a.cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", a.cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runSnapshot(c *cli.Context) error {
	ctx := c.Context

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.pool.Close()

	date := domain.DayOf(time.Now().UTC())
	if d := c.String("date"); d != "" {
		if date, err = time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", d)
		}
	}

	owner := c.String("owner")
	snap, err := a.snapshots.Generate(ctx, owner, date)
	if err != nil {
		return fmt.Errorf("generating snapshot: %w", err)
	}

	log.Printf("Snapshot for %s at %s: net worth %s %s",
		owner, date.Format("2006-01-02"), snap.NetWorth.Round(2), snap.Currency)
	return nil
}

func runExport(c *cli.Context) error {
	ctx := c.Context

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.pool.Close()

	writer, err := a.newSheetWriter(ctx)
	if err != nil {
		return err
	}

	owner := c.String("owner")
	exporter := export.NewService(a.store, a.reports, writer, a.cfg.ReportingCurrency)
	if err := exporter.ExportStatements(ctx, owner, time.Now().UTC()); err != nil {
		return fmt.Errorf("exporting statements: %w", err)
	}

	log.Printf("Statements for %s exported", owner)
	return nil
}
