package backend

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"pousada/internal/core"
	gsheet "pousada/internal/sheets/google"
	"pousada/internal/sheets/memory"
	"pousada/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	if config.SQLiteSeed {
		if err := f.seed(ctx, repo, config.DataDirectory); err != nil {
			repo.Close()
			return nil, err
		}
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath, "seed", config.SQLiteSeed)

	return &BackendResult{
		Backend: repo,
		Cleanup: repo.Close,
		Type:    SQLiteBackend,
	}, nil
}

// seed imports the fixture data into an empty database.
func (f *DefaultFactory) seed(ctx context.Context, repo *storage.SQLiteRepository, dataDir string) error {
	units, txs, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	if units > 0 || txs > 0 {
		f.logger.Debug("Skipping seed, database not empty", "units", units, "transactions", txs)
		return nil
	}

	store, err := memory.NewFromFiles(dataDirOrDefault(dataDir))
	if err != nil {
		return fmt.Errorf("load seed data: %w", err)
	}
	seedUnits, seedTxs, err := Warm(ctx, store)
	if err != nil {
		return fmt.Errorf("read seed data: %w", err)
	}
	if err := repo.Import(ctx, seedUnits, seedTxs); err != nil {
		return fmt.Errorf("import seed data: %w", err)
	}

	f.logger.Info("Seeded SQLite database", "units", len(seedUnits), "transactions", len(seedTxs))
	return nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:     config.GoogleSpreadsheetID,
		UnitsSheet:        config.GoogleUnitsSheet,
		TransactionsSheet: config.GoogleTransactionsSheet,
		CredentialsJSON:   config.GoogleServiceAccountJSON,
		CredentialsFile:   config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend", "spreadsheet_id", config.GoogleSpreadsheetID)

	return &BackendResult{
		Backend: cli,
		Type:    SheetsBackend,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	dataDir := dataDirOrDefault(config.DataDirectory)

	store, err := memory.NewFromFiles(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory backend: %w", err)
	}

	f.logger.Info("Initialized memory backend", "data_directory", dataDir)

	return &BackendResult{
		Backend: store,
		Type:    MemoryBackend,
	}, nil
}

func dataDirOrDefault(dir string) string {
	if dir == "" {
		return "data"
	}
	return dir
}

// Warm reads units and transactions concurrently. It fails as soon as either
// read fails.
func Warm(ctx context.Context, src Backend) ([]core.Unit, []core.Transaction, error) {
	var (
		units []core.Unit
		txs   []core.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		units, err = src.ListUnits(gctx)
		if err != nil {
			return fmt.Errorf("list units: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		txs, err = src.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return units, txs, nil
}
