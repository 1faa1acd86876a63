package adapters

import (
	"context"

	"kassenbuch/internal/cache"
	"kassenbuch/internal/core"
	"kassenbuch/internal/services"
	"kassenbuch/internal/sheets"
)

const snapshotKey = "all"

// LedgerAdapter routes writes through EntryService and serves reads from the
// store, keeping the last full read in a cache until the next insert.
type LedgerAdapter struct {
	store     sheets.EntryStore
	service   *services.EntryService
	snapshots cache.Cache[string, []core.Entry]
}

var _ sheets.EntryStore = (*LedgerAdapter)(nil)

// NewLedgerAdapter accepts a nil snapshot cache, disabling caching.
func NewLedgerAdapter(store sheets.EntryStore, service *services.EntryService, snapshots cache.Cache[string, []core.Entry]) *LedgerAdapter {
	return &LedgerAdapter{store: store, service: service, snapshots: snapshots}
}

// Create runs the strict creation path for form input.
func (a *LedgerAdapter) Create(ctx context.Context, in core.NewEntry) (core.Entry, error) {
	e, err := a.service.CreateEntry(ctx, in)
	if err == nil {
		a.invalidate()
	}
	return e, err
}

// Insert implements sheets.EntryWriter
func (a *LedgerAdapter) Insert(ctx context.Context, e core.Entry) (core.Entry, error) {
	stored, err := a.service.Record(ctx, e)
	if err == nil {
		a.invalidate()
	}
	return stored, err
}

// SelectAllOrdered implements sheets.EntryReader
func (a *LedgerAdapter) SelectAllOrdered(ctx context.Context) ([]core.Entry, error) {
	if a.snapshots != nil {
		if entries, ok := a.snapshots.Get(snapshotKey); ok {
			return append([]core.Entry(nil), entries...), nil
		}
	}
	entries, err := a.store.SelectAllOrdered(ctx)
	if err != nil {
		return nil, err
	}
	if a.snapshots != nil {
		a.snapshots.Set(snapshotKey, append([]core.Entry(nil), entries...))
	}
	return entries, nil
}

// GetEntry implements sheets.EntryGetter
func (a *LedgerAdapter) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	return a.store.GetEntry(ctx, id)
}

func (a *LedgerAdapter) invalidate() {
	if a.snapshots != nil {
		a.snapshots.Delete(snapshotKey)
	}
}
