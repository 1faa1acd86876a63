package adapters

import (
	"context"
	"testing"
	"time"

	"kassenbuch/internal/cache"
	"kassenbuch/internal/core"
	"kassenbuch/internal/services"
	"kassenbuch/internal/sheets/memory"
)

type countingStore struct {
	*memory.Store
	reads int
}

func (c *countingStore) SelectAllOrdered(ctx context.Context) ([]core.Entry, error) {
	c.reads++
	return c.Store.SelectAllOrdered(ctx)
}

func newTestAdapter() (*LedgerAdapter, *countingStore) {
	store := &countingStore{Store: memory.New()}
	svc := services.NewEntryService(store, nil)
	return NewLedgerAdapter(store, svc, cache.NewLRUCache[string, []core.Entry](1, time.Minute)), store
}

func TestLedgerAdapterCachesUntilInsert(t *testing.T) {
	ctx := context.Background()
	a, store := newTestAdapter()

	if _, err := a.SelectAllOrdered(ctx); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := a.SelectAllOrdered(ctx); err != nil {
		t.Fatalf("select: %v", err)
	}
	if store.reads != 1 {
		t.Fatalf("expected one store read, got %d", store.reads)
	}

	if _, err := a.Create(ctx, core.NewEntry{Date: "2024-01-05", AmountText: "10"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	all, err := a.SelectAllOrdered(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected fresh read with one entry, got %v err=%v", all, err)
	}
	if store.reads != 2 {
		t.Fatalf("insert should invalidate the snapshot, reads=%d", store.reads)
	}
}

func TestLedgerAdapterFailedCreateKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	a, store := newTestAdapter()
	_, _ = a.SelectAllOrdered(ctx)

	if _, err := a.Create(ctx, core.NewEntry{}); err == nil {
		t.Fatal("expected missing amount error")
	}
	_, _ = a.SelectAllOrdered(ctx)
	if store.reads != 1 {
		t.Fatalf("failed create must not invalidate, reads=%d", store.reads)
	}
}

func TestLedgerAdapterReturnsCopies(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter()
	if _, err := a.Insert(ctx, core.Entry{Date: core.NewDate(2024, 1, 1), Category: "x", Amount: core.Money{Cents: 5}}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	first, _ := a.SelectAllOrdered(ctx)
	first[0].Amount.Cents = 999
	second, _ := a.SelectAllOrdered(ctx)
	if second[0].Amount.Cents != 5 {
		t.Fatalf("cached snapshot was mutated through a returned slice")
	}
}
