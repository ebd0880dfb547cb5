// Package worker runs background jobs against the configured backend.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pousada/internal/amqp"
	"pousada/internal/core"
	"pousada/internal/overdue"
	"pousada/internal/sheets"
)

// OverdueWorker scans pending transactions and publishes an alert for each one
// that is overdue or due soon. An alert is published at most once per
// transaction and reference date.
type OverdueWorker struct {
	source     sheets.TransactionLister
	publisher  amqp.Publisher
	classifier overdue.Classifier
	now        func() time.Time

	mu      sync.Mutex
	sentRef core.Date
	sent    map[string]struct{}
}

func NewOverdueWorker(source sheets.TransactionLister, publisher amqp.Publisher, dueSoonDays int) *OverdueWorker {
	return &OverdueWorker{
		source:     source,
		publisher:  publisher,
		classifier: overdue.Classifier{DueSoonDays: dueSoonDays},
		now:        time.Now,
		sent:       make(map[string]struct{}),
	}
}

// ScanResult counts the outcome of one scan.
type ScanResult struct {
	Pending   int
	Alerts    int
	Published int
	Skipped   int
	Failed    int
}

// Scan publishes alerts for ref. Publish failures do not stop the scan; they
// are joined into the returned error and retried on the next scan.
func (w *OverdueWorker) Scan(ctx context.Context, ref core.Date) (ScanResult, error) {
	txs, err := w.source.ListTransactions(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("list transactions: %w", err)
	}

	summary := w.classifier.Pending(txs, ref, overdue.Options{})
	res := ScanResult{Pending: summary.Count}

	var errs []error
	for _, item := range summary.Items {
		status := item.Classification.Status
		if status != overdue.StatusOverdue && status != overdue.StatusDueSoon {
			continue
		}
		res.Alerts++

		msg := amqp.NewDueAlertMessage(item, ref)
		if !w.claim(ref, msg.DedupKey()) {
			res.Skipped++
			continue
		}
		if err := w.publisher.PublishDueAlert(ctx, msg); err != nil {
			w.release(msg.DedupKey())
			res.Failed++
			errs = append(errs, fmt.Errorf("publish %s: %w", item.Transaction.ID, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		res.Published++
	}

	slog.InfoContext(ctx, "Overdue scan completed",
		"reference_date", ref.Key(),
		"pending", res.Pending,
		"alerts", res.Alerts,
		"published", res.Published,
		"skipped", res.Skipped,
		"failed", res.Failed)

	return res, errors.Join(errs...)
}

// claim marks key as sent for ref. Keys from earlier reference dates are
// forgotten once the date moves on.
func (w *OverdueWorker) claim(ref core.Date, key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.sentRef.Equal(ref) {
		w.sentRef = ref
		w.sent = make(map[string]struct{})
	}
	if _, ok := w.sent[key]; ok {
		return false
	}
	w.sent[key] = struct{}{}
	return true
}

func (w *OverdueWorker) release(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sent, key)
}

// Run scans immediately and then every interval until ctx is cancelled. The
// reference date is today in the local calendar.
func (w *OverdueWorker) Run(ctx context.Context, interval time.Duration) error {
	scan := func() {
		if _, err := w.Scan(ctx, core.DateOf(w.now())); err != nil {
			slog.ErrorContext(ctx, "Overdue scan failed", "error", err)
		}
	}

	scan()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping overdue worker", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			scan()
		}
	}
}
