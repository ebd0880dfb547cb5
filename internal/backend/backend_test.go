package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"pousada/internal/config"
	"pousada/internal/core"
	"pousada/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFromAppConfig(t *testing.T) {
	cfg := &config.Config{
		DataBackend:         "sheets",
		DataDir:             "/srv/data",
		GoogleSpreadsheetID: "sheet-1",
		GoogleUnitsSheet:    "Unidades",
	}
	got, err := FromAppConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != SheetsBackend || got.DataDirectory != "/srv/data" || got.GoogleSpreadsheetID != "sheet-1" {
		t.Errorf("unexpected config: %+v", got)
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "memory", config: Config{Type: MemoryBackend}},
		{name: "sqlite", config: Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}},
		{name: "sqlite without path", config: Config{Type: SQLiteBackend}, wantErr: "database path"},
		{name: "sheets without id", config: Config{Type: SheetsBackend, GoogleServiceAccountFile: "sa.json"}, wantErr: "Spreadsheet ID"},
		{name: "sheets with ambient credentials", config: Config{Type: SheetsBackend, GoogleSpreadsheetID: "id"}},
		{name: "sheets", config: Config{Type: SheetsBackend, GoogleSpreadsheetID: "id", GoogleServiceAccountJSON: "{}"}},
		{name: "unknown", config: Config{Type: "ftp"}, wantErr: "invalid backend type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	res, err := NewFactory(quietLogger()).CreateBackend(context.Background(), Config{
		Type:          MemoryBackend,
		DataDirectory: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Close()

	units, txs, err := Warm(context.Background(), res.Backend)
	if err != nil {
		t.Fatalf("warm: %v", err)
	}
	if len(units) == 0 || len(txs) == 0 {
		t.Errorf("expected demo data, got %d units %d txs", len(units), len(txs))
	}
}

func TestCreateSQLiteBackendSeedsOnce(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		Type:          SQLiteBackend,
		SQLiteDBPath:  filepath.Join(t.TempDir(), "pousada.db"),
		SQLiteSeed:    true,
		DataDirectory: t.TempDir(),
	}
	f := NewFactory(quietLogger())

	res, err := f.CreateBackend(ctx, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo := res.Backend.(*storage.SQLiteRepository)
	units, txs, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if units == 0 || txs == 0 {
		t.Fatalf("expected seeded rows, got %d units %d txs", units, txs)
	}
	if err := res.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	res, err = f.CreateBackend(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer res.Close()
	units2, txs2, err := res.Backend.(*storage.SQLiteRepository).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if units2 != units || txs2 != txs {
		t.Errorf("seed ran twice: %d/%d then %d/%d", units, txs, units2, txs2)
	}
}

type failingSource struct{ err error }

func (f failingSource) ListUnits(ctx context.Context) ([]core.Unit, error) {
	return nil, f.err
}

func (f failingSource) GetUnit(ctx context.Context, id string) (core.Unit, error) {
	return core.Unit{}, f.err
}

func (f failingSource) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWarmPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := Warm(context.Background(), failingSource{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestBackendResultCloseNil(t *testing.T) {
	var r *BackendResult
	if err := r.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&BackendResult{}).Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
