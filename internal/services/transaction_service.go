package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fundtrackr/internal/cache"
	"fundtrackr/internal/core"
	"fundtrackr/internal/export"
	"fundtrackr/internal/log"
	"fundtrackr/internal/sheets"
)

// snapshotTTL bounds staleness when something outside the service writes
// to the store.
const snapshotTTL = 30 * time.Second

type (
	// Store is the persistence port the service drives. The SQLite
	// repository satisfies it.
	Store interface {
		ListAll(ctx context.Context) ([]core.Transaction, error)
		Insert(ctx context.Context, t core.Transaction) (int64, error)
		Update(ctx context.Context, t core.Transaction) error
		Delete(ctx context.Context, id int64) error
	}

	// AlertPublisher hands evaluated alerts to the delivery queue.
	AlertPublisher interface {
		PublishAlert(ctx context.Context, alert core.Alert) error
	}
)

// TransactionService orchestrates transaction operations across the
// store, the alert queue and the optional cloud export sink.
type TransactionService struct {
	store     Store
	publisher AlertPublisher
	sink      sheets.ExportSink
	snapshot  *cache.Snapshot[[]core.Transaction]
}

func NewTransactionService(store Store, publisher AlertPublisher, sink sheets.ExportSink) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
		sink:      sink,
		snapshot:  cache.NewSnapshot[[]core.Transaction](snapshotTTL),
	}
}

// listAll reads the full history through the snapshot cache.
func (s *TransactionService) listAll(ctx context.Context) ([]core.Transaction, error) {
	if txs, ok := s.snapshot.Get(); ok {
		return txs, nil
	}
	txs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshot.Set(txs)
	return txs, nil
}

// Add persists a transaction, then evaluates alerts over the updated
// history. Alert evaluation is best-effort: any failure after a
// successful insert is logged and swallowed, never surfaced as an
// insert failure.
func (s *TransactionService) Add(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("validate transaction: %w", err)
	}

	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}
	t.ID = id
	s.snapshot.Invalidate()

	s.evaluateAndPublish(ctx, t)

	return id, nil
}

func (s *TransactionService) evaluateAndPublish(ctx context.Context, inserted core.Transaction) {
	history, err := s.listAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Alert evaluation skipped, store read failed",
			log.FieldError, err, log.FieldTransactionID, inserted.ID)
		return
	}

	for _, alert := range core.EvaluateAlerts(history, inserted) {
		if s.publisher == nil {
			slog.WarnContext(ctx, "Alert publisher not available, dropping alert",
				log.FieldAlertSlot, alert.Slot, log.FieldTitle, alert.Title)
			continue
		}
		if err := s.publisher.PublishAlert(ctx, alert); err != nil {
			slog.ErrorContext(ctx, "Failed to publish alert",
				log.FieldError, err, log.FieldAlertSlot, alert.Slot)
		}
	}
}

// Update rewrites an existing transaction.
func (s *TransactionService) Update(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}
	if err := s.store.Update(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.snapshot.Invalidate()
	return nil
}

// Delete removes a transaction.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.snapshot.Invalidate()
	return nil
}

// List returns the filtered snapshot, newest first.
func (s *TransactionService) List(ctx context.Context, criteria core.Criteria, now time.Time) ([]core.Transaction, error) {
	txs, err := s.listAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return core.Apply(txs, criteria, now), nil
}

// Summary computes totals over the whole history.
func (s *TransactionService) Summary(ctx context.Context) (core.Totals, error) {
	txs, err := s.listAll(ctx)
	if err != nil {
		return core.Totals{}, fmt.Errorf("read snapshot: %w", err)
	}
	return core.Summarize(txs), nil
}

// Breakdown computes the per-category statistics for one kind.
func (s *TransactionService) Breakdown(ctx context.Context, kind core.Kind) ([]core.CategoryStat, error) {
	txs, err := s.listAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return core.CategoryBreakdown(txs, kind), nil
}

// ExportCSV formats the full history as CSV and returns the artifact
// with its suggested filename. The artifact goes straight back to the
// caller; nothing is parked in shared state.
func (s *TransactionService) ExportCSV(ctx context.Context, now time.Time) (string, string, error) {
	txs, err := s.listAll(ctx)
	if err != nil {
		return "", "", fmt.Errorf("read snapshot: %w", err)
	}

	s.pushToSink(ctx, txs)

	return export.Filename("csv", now), export.CSV(txs), nil
}

// ExportReport builds the paginated report document for the full history.
func (s *TransactionService) ExportReport(ctx context.Context, now time.Time) (string, export.Document, error) {
	txs, err := s.listAll(ctx)
	if err != nil {
		return "", export.Document{}, fmt.Errorf("read snapshot: %w", err)
	}
	return export.Filename("json", now), export.BuildReport(txs, now), nil
}

// Count returns the number of stored transactions, used by export
// surfaces to pre-check for emptiness.
func (s *TransactionService) Count(ctx context.Context) (int, error) {
	txs, err := s.listAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("read snapshot: %w", err)
	}
	return len(txs), nil
}

// pushToSink mirrors the export to the configured cloud sink. Sink
// failures never fail the export.
func (s *TransactionService) pushToSink(ctx context.Context, txs []core.Transaction) {
	if s.sink == nil || len(txs) == 0 {
		return
	}
	ref, err := s.sink.AppendSnapshot(ctx, txs)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to mirror export to sink", log.FieldError, err)
		return
	}
	slog.InfoContext(ctx, "Export mirrored to sink", "rows", len(txs), "ref", ref)
}
