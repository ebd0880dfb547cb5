package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"pousada/internal/core"
)

// Sheet names of the exported workbook.
const (
	SheetSummary    = "Resumo"
	SheetCategories = "Categorias"
	SheetMonths     = "Meses"
)

// WriteXLSX writes r as a workbook with a summary, a category and a month
// sheet. Amounts are written as numbers with two decimals; the summary also
// carries them formatted in reais.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetMonths} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	summary := [][]any{
		{"Período", r.Period.String()},
		{"Transações", r.Count},
	}
	for _, line := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Receitas pagas", r.Totals.IncomePaid},
		{"Receitas pendentes", r.Totals.IncomeUnpaid},
		{"Despesas pagas", r.Totals.ExpensePaid},
		{"Despesas pendentes", r.Totals.ExpenseUnpaid},
		{"Saldo", r.Totals.Net},
	} {
		summary = append(summary, []any{line.label, money(line.amount), core.FormatBRL(line.amount)})
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	categories := [][]any{{"Tipo", "Categoria", "Total", "Quantidade"}}
	for _, ct := range SortedCategories(r.Income) {
		categories = append(categories, []any{"INCOME", string(ct.Category), money(ct.Total), ct.Count})
	}
	for _, ct := range SortedCategories(r.Expenses) {
		categories = append(categories, []any{"EXPENSE", string(ct.Category), money(ct.Total), ct.Count})
	}
	if err := writeRows(f, SheetCategories, categories); err != nil {
		return err
	}

	months := [][]any{{"Mês", "Receitas", "Despesas", "Saldo"}}
	for _, m := range r.ByMonth {
		months = append(months, []any{m.Label, money(m.Income), money(m.Expenses), money(m.Net)})
	}
	if err := writeRows(f, SheetMonths, months); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
