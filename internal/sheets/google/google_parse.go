package google

import (
	"fmt"
	"strings"

	"pousada/internal/core"
)

// column is a header with the labels it may appear under.
type column struct {
	name     string
	aliases  []string
	required bool
}

var unitColumns = []column{
	{name: "id", aliases: []string{"id", "codigo", "código"}, required: true},
	{name: "name", aliases: []string{"name", "nome"}, required: true},
	{name: "base_price", aliases: []string{"base_price", "preco_base", "diária"}},
	{name: "weekend_price", aliases: []string{"weekend_price", "preco_fim_de_semana"}},
	{name: "holiday_price", aliases: []string{"holiday_price", "preco_feriado"}},
	{name: "check_in_time", aliases: []string{"check_in_time", "check-in"}},
	{name: "check_out_time", aliases: []string{"check_out_time", "check-out"}},
}

var transactionColumns = []column{
	{name: "id", aliases: []string{"id", "codigo", "código"}, required: true},
	{name: "transaction_type", aliases: []string{"transaction_type", "tipo"}, required: true},
	{name: "category", aliases: []string{"category", "categoria"}},
	{name: "description", aliases: []string{"description", "descricao", "descrição"}},
	{name: "amount", aliases: []string{"amount", "valor"}, required: true},
	{name: "due_date", aliases: []string{"due_date", "vencimento"}},
	{name: "paid_date", aliases: []string{"paid_date", "pagamento"}},
}

// locate maps each column name to its index in headers.
func locate(headers []string, cols []column) (map[string]int, error) {
	idx := make(map[string]int, len(cols))
	var missing []string
	for _, c := range cols {
		i := indexOf(headers, c.aliases...)
		if i == -1 && c.required {
			missing = append(missing, c.name)
		}
		idx[c.name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}
	return idx, nil
}

// rows yields the data rows after the header, skipping blank ones.
func rows(values [][]any) [][]string {
	out := make([][]string, 0, len(values))
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

// parseUnits converts a values matrix whose first row is a header.
func parseUnits(values [][]any) ([]core.RawUnit, error) {
	if len(values) == 0 {
		return nil, nil
	}
	col, err := locate(toStrings(values[0]), unitColumns)
	if err != nil {
		return nil, err
	}
	var out []core.RawUnit
	for _, row := range rows(values) {
		out = append(out, core.RawUnit{
			ID:           safeGet(row, col["id"]),
			Name:         safeGet(row, col["name"]),
			BasePrice:    safeGet(row, col["base_price"]),
			WeekendPrice: safeGet(row, col["weekend_price"]),
			HolidayPrice: safeGet(row, col["holiday_price"]),
			CheckInTime:  safeGet(row, col["check_in_time"]),
			CheckOutTime: safeGet(row, col["check_out_time"]),
		})
	}
	return out, nil
}

// parseTransactions converts a values matrix whose first row is a header.
func parseTransactions(values [][]any) ([]core.RawTransaction, error) {
	if len(values) == 0 {
		return nil, nil
	}
	col, err := locate(toStrings(values[0]), transactionColumns)
	if err != nil {
		return nil, err
	}
	var out []core.RawTransaction
	for _, row := range rows(values) {
		out = append(out, core.RawTransaction{
			ID:          safeGet(row, col["id"]),
			Type:        safeGet(row, col["transaction_type"]),
			Category:    safeGet(row, col["category"]),
			Description: safeGet(row, col["description"]),
			Amount:      safeGet(row, col["amount"]),
			DueDate:     safeGet(row, col["due_date"]),
			PaidDate:    safeGet(row, col["paid_date"]),
		})
	}
	return out, nil
}
