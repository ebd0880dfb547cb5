package google

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"pousada/internal/core"
	ports "pousada/internal/sheets"
)

func TestParseTransactions_PortugueseHeaders(t *testing.T) {
	values := [][]any{
		{"Código", "Tipo", "Categoria", "Descrição", "Valor", "Vencimento", "Pagamento"},
		{"t1", "INCOME", "LODGING", "Reserva", "1050,00", "2025-01-10", "2025-01-11"},
		{"", "", "", "", "", "", ""},
		{"t2", "expense", "UTILITIES", "Luz", "412,37", "2025-01-15"},
	}
	raws, err := parseTransactions(values)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 rows (blank skipped), got %d", len(raws))
	}
	if raws[1].PaidDate != "" || raws[1].DueDate != "2025-01-15" {
		t.Errorf("short row parsed wrong: %+v", raws[1])
	}
}

func TestParseTransactions_MissingHeader(t *testing.T) {
	_, err := parseTransactions([][]any{{"id", "tipo"}})
	if err == nil || !strings.Contains(err.Error(), "missing amount") {
		t.Fatalf("expected missing amount error, got %v", err)
	}
}

func TestParseUnits_EnglishHeaders(t *testing.T) {
	values := [][]any{
		{"id", "name", "base_price", "weekend_price", "holiday_price"},
		{"u1", "Chalé", 250.5, "", 1200000.0},
	}
	raws, err := parseUnits(values)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if len(raws) != 1 || raws[0].BasePrice != "250.5" || raws[0].HolidayPrice != "1200000" {
		t.Fatalf("unexpected units: %+v", raws)
	}
}

func fakeValues(data map[string][][]any) valuesFunc {
	return func(_ context.Context, rng string) ([][]any, error) {
		sheet, _, _ := strings.Cut(rng, "!")
		v, ok := data[sheet]
		if !ok {
			return nil, errors.New("no such sheet")
		}
		return v, nil
	}
}

func TestClient_ListAndGet(t *testing.T) {
	c := newClient(fakeValues(map[string][][]any{
		DefaultUnitsSheet: {
			{"id", "nome", "preco_base"},
			{"u1", "Chalé", "200"},
		},
		DefaultTransactionsSheet: {
			{"id", "tipo", "valor", "vencimento"},
			{"t1", "INCOME", "99,90", "2025-03-01"},
		},
	}), Config{})

	ctx := context.Background()
	u, err := c.GetUnit(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUnit: %v", err)
	}
	if !u.BasePrice.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("BasePrice = %s", u.BasePrice.Decimal)
	}
	if _, err := c.GetUnit(ctx, "missing"); !errors.Is(err, ports.ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got %v", err)
	}

	txs, err := c.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Category != core.Other || !txs[0].Amount.Equal(decimal.RequireFromString("99.90")) {
		t.Errorf("unexpected transactions: %+v", txs)
	}
}

func TestClient_ParseErrorSurfaces(t *testing.T) {
	c := newClient(fakeValues(map[string][][]any{
		"Caixa": {
			{"id", "tipo", "valor", "vencimento"},
			{"t1", "INCOME", "10", "31/01/2025"},
		},
	}), Config{TransactionsSheet: "Caixa"})

	_, err := c.ListTransactions(context.Background())
	var pe *core.ParseError
	if !errors.As(err, &pe) || pe.Record != "t1" || pe.Field != "due_date" {
		t.Fatalf("expected due_date ParseError for t1, got %v", err)
	}
}
