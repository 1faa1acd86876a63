package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kassenbuch/internal/amqp"
	"kassenbuch/internal/cache"
	"kassenbuch/internal/metrics"
	"kassenbuch/internal/sheets"
)

// Consumer delivers entry.created messages until ctx is done.
type Consumer interface {
	ConsumeEntryCreated(ctx context.Context, handler func(context.Context, *amqp.EntryCreatedMessage) error) error
}

// MirrorWorker copies newly stored entries to the spreadsheet mirror.
type MirrorWorker struct {
	store    sheets.EntryGetter
	mirror   sheets.EntryMirror
	mirrored *cache.LRUCache[int64, string]
}

// NewMirrorWorker remembers up to 1024 recently mirrored ids so redelivered
// messages do not append duplicate rows.
func NewMirrorWorker(store sheets.EntryGetter, mirror sheets.EntryMirror) *MirrorWorker {
	return &MirrorWorker{
		store:    store,
		mirror:   mirror,
		mirrored: cache.NewLRUCache[int64, string](1024, 24*time.Hour),
	}
}

// HandleEntryCreated loads the entry by id and appends it to the mirror.
// A returned error makes the consumer requeue the message.
func (w *MirrorWorker) HandleEntryCreated(ctx context.Context, msg *amqp.EntryCreatedMessage) error {
	if ref, ok := w.mirrored.Get(msg.ID); ok {
		slog.InfoContext(ctx, "Entry already mirrored, skipping",
			"entry_id", msg.ID, "message_id", msg.MessageID, "sheets_ref", ref)
		metrics.MirrorMessages.WithLabelValues("duplicate").Inc()
		return nil
	}

	e, err := w.store.GetEntry(ctx, msg.ID)
	if err != nil {
		metrics.MirrorMessages.WithLabelValues("failed").Inc()
		return fmt.Errorf("get entry from storage: %w", err)
	}

	ref, err := w.mirror.AppendEntry(ctx, e)
	if err != nil {
		metrics.MirrorMessages.WithLabelValues("failed").Inc()
		return fmt.Errorf("append to sheets: %w", err)
	}
	w.mirrored.Set(msg.ID, ref)
	metrics.MirrorMessages.WithLabelValues("mirrored").Inc()

	slog.InfoContext(ctx, "Successfully mirrored entry",
		"entry_id", e.ID,
		"message_id", msg.MessageID,
		"sheets_ref", ref,
		"amount_cents", e.Amount.Cents)
	return nil
}

// Run consumes until ctx is cancelled.
func (w *MirrorWorker) Run(ctx context.Context, consumer Consumer) error {
	slog.InfoContext(ctx, "Mirror worker started")
	err := consumer.ConsumeEntryCreated(ctx, w.HandleEntryCreated)
	if ctx.Err() != nil {
		slog.InfoContext(ctx, "Mirror worker stopped")
		return nil
	}
	return err
}
