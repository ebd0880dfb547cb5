package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"pousada/internal/core"
	ports "pousada/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Default tab names.
const (
	DefaultUnitsSheet        = "Unidades"
	DefaultTransactionsSheet = "Transacoes"
)

// Config selects the spreadsheet and its tabs.
type Config struct {
	SpreadsheetID     string
	UnitsSheet        string
	TransactionsSheet string
	// Service account credentials; JSON wins over File. When both are empty
	// GOOGLE_APPLICATION_CREDENTIALS is consulted.
	CredentialsJSON string
	CredentialsFile string
}

// valuesFunc reads a range as the Sheets API returns it.
type valuesFunc func(ctx context.Context, rng string) ([][]any, error)

// Client reads units and transactions from a spreadsheet. It never writes.
type Client struct {
	values            valuesFunc
	unitsSheet        string
	transactionsSheet string
}

// Ensure interface conformance
var _ ports.Source = (*Client)(nil)

// New creates a read-only Sheets client authenticated with a service account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	id := cfg.SpreadsheetID
	get := func(ctx context.Context, rng string) ([][]any, error) {
		// Numbers come back raw so locale thousands separators never reach
		// the amount parser; dates keep the sheet's text form.
		resp, err := svc.Spreadsheets.Values.Get(id, rng).
			ValueRenderOption("UNFORMATTED_VALUE").
			DateTimeRenderOption("FORMATTED_STRING").
			Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		return resp.Values, nil
	}
	return newClient(get, cfg), nil
}

func newClient(get valuesFunc, cfg Config) *Client {
	units := strings.TrimSpace(cfg.UnitsSheet)
	if units == "" {
		units = DefaultUnitsSheet
	}
	txs := strings.TrimSpace(cfg.TransactionsSheet)
	if txs == "" {
		txs = DefaultTransactionsSheet
	}
	return &Client{values: get, unitsSheet: units, transactionsSheet: txs}
}

func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	credentialsJSON := []byte(strings.TrimSpace(cfg.CredentialsJSON))
	file := strings.TrimSpace(cfg.CredentialsFile)
	if len(credentialsJSON) == 0 && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case len(credentialsJSON) > 0:
		slog.InfoContext(ctx, "Using inline service account credentials")
	case file != "":
		slog.InfoContext(ctx, "Reading service account credentials", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) ListUnits(ctx context.Context) ([]core.Unit, error) {
	rng := c.unitsSheet + "!A:G"
	values, err := c.values(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	raws, err := parseUnits(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.unitsSheet, err)
	}
	units, err := core.ParseUnits(raws)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.unitsSheet, err)
	}
	return units, nil
}

func (c *Client) GetUnit(ctx context.Context, id string) (core.Unit, error) {
	units, err := c.ListUnits(ctx)
	if err != nil {
		return core.Unit{}, err
	}
	return ports.FindUnit(units, id)
}

func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rng := c.transactionsSheet + "!A:G"
	values, err := c.values(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	raws, err := parseTransactions(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.transactionsSheet, err)
	}
	txs, err := core.ParseTransactions(raws)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.transactionsSheet, err)
	}
	return txs, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		if f, ok := v.(float64); ok {
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, targets ...string) int {
	for _, target := range targets {
		for i, v := range arr {
			if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
				return i
			}
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
