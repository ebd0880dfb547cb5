package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"pousada/internal/core"
	"pousada/internal/holiday"
	"pousada/internal/log"
	"pousada/internal/overdue"
	"pousada/internal/pricing"
	"pousada/internal/report"
	"pousada/internal/sheets"
)

const (
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	upcomingHolidayDays = 90
)

type unitView struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	BasePrice    decimal.NullDecimal `json:"base_price"`
	WeekendPrice decimal.NullDecimal `json:"weekend_price"`
	HolidayPrice decimal.NullDecimal `json:"holiday_price"`
	CheckInTime  string              `json:"check_in_time,omitempty"`
	CheckOutTime string              `json:"check_out_time,omitempty"`
}

func newUnitView(u core.Unit) unitView {
	return unitView{
		ID:           u.ID,
		Name:         u.Name,
		BasePrice:    u.BasePrice,
		WeekendPrice: u.WeekendPrice,
		HolidayPrice: u.HolidayPrice,
		CheckInTime:  u.CheckInTime,
		CheckOutTime: u.CheckOutTime,
	}
}

type pendingItemView struct {
	ID           string               `json:"id"`
	Type         core.TransactionType `json:"transaction_type"`
	Category     core.Category        `json:"category"`
	Description  string               `json:"description,omitempty"`
	Amount       decimal.Decimal      `json:"amount"`
	DueDate      core.Date            `json:"due_date"`
	Urgency      overdue.Status       `json:"urgency"`
	DaysOverdue  int                  `json:"days_overdue"`
	DaysUntilDue int                  `json:"days_until_due"`
}

type pendingView struct {
	overdue.Summary
	Items []pendingItemView `json:"items"`
}

func newPendingView(s overdue.Summary) pendingView {
	v := pendingView{Summary: s, Items: make([]pendingItemView, 0, len(s.Items))}
	for _, it := range s.Items {
		tx := it.Transaction
		v.Items = append(v.Items, pendingItemView{
			ID:           tx.ID,
			Type:         tx.Type,
			Category:     tx.Category,
			Description:  tx.Description,
			Amount:       tx.Amount,
			DueDate:      tx.DueDate,
			Urgency:      it.Classification.Status,
			DaysOverdue:  it.Classification.DaysOverdue,
			DaysUntilDue: it.Classification.DaysUntilDue,
		})
	}
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
		"uptime":    s.now().Sub(s.started).Round(time.Second).String(),
	})
}

// handleReady checks that the data source answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	checks := map[string]any{}

	if s.source == nil {
		checks["source"] = "not_configured"
		status, code = "not_ready", http.StatusServiceUnavailable
	} else if _, err := s.source.ListUnits(ctx); err != nil {
		checks["source"] = fmt.Sprintf("failed: %v", err)
		status, code = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["source"] = "ok"
	}

	checks["cache"] = map[string]any{
		"units_entries":        s.unitsCache.Size(),
		"transactions_entries": s.txCache.Size(),
		"ttl":                  s.cacheTTL.String(),
	}
	rl := s.rateLimiter.GetMetrics()
	checks["rate_limiter"] = map[string]any{
		"active_clients": rl.ClientCount,
		"rejected_total": rl.TotalHits,
	}
	tm := s.traceMiddleware.GetMetrics()
	checks["requests"] = map[string]any{
		"total":         tm.TotalRequests,
		"server_errors": tm.ServerErrors,
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": s.now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleHolidays lists holidays of one year, or of every date in [from, to].
func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("from") || q.Has("to") {
		from, to, err := ParseHolidayRange(q)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		list := s.calendar.Between(from, to)
		writeJSON(w, http.StatusOK, map[string]any{"from": from, "to": to, "holidays": list, "count": len(list)})
		return
	}

	year, err := ParseYear(q, s.today().Year())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	list := s.calendar.ForYear(year).List()
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "holidays": list, "count": len(list)})
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.units(r.Context())
	if err != nil {
		s.writeSourceError(w, r, log.OpList, err)
		return
	}
	views := make([]unitView, 0, len(units))
	for _, u := range units {
		views = append(views, newUnitView(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"units": views, "count": len(views)})
}

type quoteResponse struct {
	pricing.Quote
	UnitName   string `json:"unit_name"`
	NightCount int    `json:"night_count"`
}

// handleQuote prices a stay for one unit. A check-out on or before check-in
// yields an empty quote rather than an error.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx).WithComponent(log.ComponentPricing)
	q := r.URL.Query()

	stay, err := ParseStay(q)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	override, err := ParseOverride(q)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	unit, err := s.unit(ctx, id)
	if errors.Is(err, sheets.ErrUnitNotFound) {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unit %q not found", id))
		return
	}
	if err != nil {
		s.writeSourceError(w, r, log.OpQuote, err)
		return
	}

	quote := s.engine.Quote(stay, unit, override)

	fields := log.NewFields().
		WithOperation(log.OpQuote).
		WithQuote(unit.ID, stay.CheckIn.Key(), stay.CheckOut.Key(), quote.NightCount(), core.FormatBRL(quote.Total))
	logger.InfoContext(ctx, "Stay quoted", append(fields.ToSlice(), "overridden", quote.Overridden)...)

	writeJSON(w, http.StatusOK, quoteResponse{Quote: quote, UnitName: unit.Name, NightCount: quote.NightCount()})
}

// unit resolves id from the cached unit list.
func (s *Server) unit(ctx context.Context, id string) (core.Unit, error) {
	units, err := s.units(ctx)
	if err != nil {
		return core.Unit{}, err
	}
	return sheets.FindUnit(units, id)
}

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref, err := ParseRef(q, s.today())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	typ, err := ParseType(q)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := ParseLimit(q, s.pendingLimit)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.transactions(r.Context())
	if err != nil {
		s.writeSourceError(w, r, log.OpClassify, err)
		return
	}

	summary := s.classifier.Pending(txs, ref, overdue.Options{Type: typ, Limit: limit})
	log.FromContext(r.Context()).WithComponent(log.ComponentOverdue).DebugContext(r.Context(), "Pending classified",
		log.FieldReference, ref.Key(),
		log.FieldCount, summary.Count,
		"overdue_count", summary.OverdueCount)

	writeJSON(w, http.StatusOK, newPendingView(summary))
}

type reportResponse struct {
	Period string `json:"period"`
	report.Report
	IncomeCategories  []report.CategoryTotal `json:"income_categories"`
	ExpenseCategories []report.CategoryTotal `json:"expense_categories"`
}

// buildReport parses the period selectors and aggregates the transactions.
// It writes the error response itself and reports whether to continue.
func (s *Server) buildReport(w http.ResponseWriter, r *http.Request) (report.Report, bool) {
	period, err := ParsePeriod(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return report.Report{}, false
	}
	txs, err := s.transactions(r.Context())
	if err != nil {
		s.writeSourceError(w, r, log.OpReport, err)
		return report.Report{}, false
	}
	rep := report.Build(txs, period)
	log.FromContext(r.Context()).WithComponent(log.ComponentReport).InfoContext(r.Context(), "Report built",
		log.FieldPeriod, period.String(),
		log.FieldCount, rep.Count)
	return rep, true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{
		Period:            rep.Period.String(),
		Report:            rep,
		IncomeCategories:  report.SortedCategories(rep.Income),
		ExpenseCategories: report.SortedCategories(rep.Expenses),
	})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.buildReport(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, rep); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Workbook export failed",
			log.FieldOperation, log.OpExport,
			log.FieldError, err.Error())
		writeError(w, r, http.StatusInternalServerError, "export failed")
		return
	}

	name := "relatorio-todos.xlsx"
	if start, end, bounded := rep.Period.Bounds(); bounded {
		name = fmt.Sprintf("relatorio-%s-%s.xlsx", start.Key(), end.Key())
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type dashboardResponse struct {
	Reference core.Date         `json:"reference"`
	UnitCount int               `json:"unit_count"`
	Totals    report.Totals     `json:"totals"`
	Pending   pendingView       `json:"pending"`
	Holidays  []holiday.Holiday `json:"upcoming_holidays"`
}

// handleDashboard loads units and transactions concurrently and combines
// the all-dates totals with the pending summary at ref.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ref, err := ParseRef(r.URL.Query(), s.today())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var (
		units []core.Unit
		txs   []core.Transaction
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		units, err = s.units(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.transactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.writeSourceError(w, r, "dashboard", err)
		return
	}

	upcoming := s.calendar.Between(ref, ref.AddDays(upcomingHolidayDays))
	writeJSON(w, http.StatusOK, dashboardResponse{
		Reference: ref,
		UnitCount: len(units),
		Totals:    report.ComputeTotals(txs),
		Pending:   newPendingView(s.classifier.Pending(txs, ref, overdue.Options{Limit: s.pendingLimit})),
		Holidays:  upcoming,
	})
}
