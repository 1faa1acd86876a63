package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kassenbuch/internal/core"
	"kassenbuch/internal/metrics"
	"kassenbuch/internal/sheets"
)

// Publisher announces stored entries to other processes.
type Publisher interface {
	PublishEntryCreated(ctx context.Context, id int64) error
}

// EntryService orchestrates entry creation across the store and the broker.
type EntryService struct {
	store     sheets.EntryWriter
	publisher Publisher
	now       func() time.Time
}

// NewEntryService accepts a nil publisher, in which case events are skipped.
func NewEntryService(store sheets.EntryWriter, publisher Publisher) *EntryService {
	return &EntryService{store: store, publisher: publisher, now: time.Now}
}

// CreateEntry runs the strict creation path: validate the form input, store
// the entry and publish entry.created. Validation errors are the core
// sentinels; nothing is stored when they occur.
func (s *EntryService) CreateEntry(ctx context.Context, in core.NewEntry) (core.Entry, error) {
	e, err := in.Build(core.DateOf(s.now()))
	if err != nil {
		metrics.EntryRejections.WithLabelValues(RejectionReason(err)).Inc()
		return core.Entry{}, err
	}
	return s.Record(ctx, e)
}

// RejectionReason maps a creation error onto the metric label used for it.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, core.ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, core.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, core.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, core.ErrEmptyCategory), errors.Is(err, core.ErrCategoryTooLong),
		errors.Is(err, core.ErrDescriptionTooLong), errors.Is(err, core.ErrVoucherRefTooLong):
		return "validation"
	default:
		return "store"
	}
}

// Record stores an already built entry and publishes it.
func (s *EntryService) Record(ctx context.Context, e core.Entry) (core.Entry, error) {
	stored, err := s.store.Insert(ctx, e)
	if err != nil {
		metrics.EntryRejections.WithLabelValues("store").Inc()
		return core.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	metrics.EntriesCreated.Inc()

	// The entry is stored; a failed publish only delays the mirror.
	if err := s.publish(ctx, stored.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry created message",
			"entry_id", stored.ID, "error", err)
	}
	return stored, nil
}

func (s *EntryService) publish(ctx context.Context, id int64) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping entry created message")
		return nil
	}
	return s.publisher.PublishEntryCreated(ctx, id)
}

type closer interface{ Close() error }

// Close closes the store and publisher when they hold resources.
func (s *EntryService) Close() error {
	var errs []error

	if c, ok := s.store.(closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if c, ok := s.publisher.(closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close entry service: %v", errs)
	}
	return nil
}
