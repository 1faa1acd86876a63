package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kassenbuch/internal/core"
)

type fakeStore struct {
	inserted []core.Entry
	err      error
	closed   bool
}

func (f *fakeStore) Insert(_ context.Context, e core.Entry) (core.Entry, error) {
	if f.err != nil {
		return core.Entry{}, f.err
	}
	e.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, e)
	return e, nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

type fakePublisher struct {
	ids []int64
	err error
}

func (f *fakePublisher) PublishEntryCreated(_ context.Context, id int64) error {
	f.ids = append(f.ids, id)
	return f.err
}

func newTestService(store *fakeStore, pub Publisher) *EntryService {
	s := NewEntryService(store, pub)
	s.now = func() time.Time { return time.Date(2024, 5, 17, 23, 59, 0, 0, time.UTC) }
	return s
}

func TestCreateEntryStoresAndPublishes(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	s := newTestService(store, pub)

	e, err := s.CreateEntry(context.Background(), core.NewEntry{Category: core.CategoryExpense, AmountText: "12,34"})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if e.ID != 1 || e.Amount.Cents != -1234 || e.RawDate != "2024-05-17" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if len(pub.ids) != 1 || pub.ids[0] != 1 {
		t.Fatalf("expected publish of id 1, got %v", pub.ids)
	}
}

func TestCreateEntryMissingAmountPersistsNothing(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	s := newTestService(store, pub)

	_, err := s.CreateEntry(context.Background(), core.NewEntry{AmountText: " "})
	if !errors.Is(err, core.ErrMissingAmount) {
		t.Fatalf("expected ErrMissingAmount, got %v", err)
	}
	if len(store.inserted) != 0 || len(pub.ids) != 0 {
		t.Fatalf("nothing should be stored or published")
	}
}

func TestCreateEntryStoreFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	pub := &fakePublisher{}
	s := newTestService(&fakeStore{err: storeErr}, pub)

	_, err := s.CreateEntry(context.Background(), core.NewEntry{AmountText: "1"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if len(pub.ids) != 0 {
		t.Fatalf("failed insert must not be published")
	}
}

func TestRecordIgnoresPublishFailure(t *testing.T) {
	s := newTestService(&fakeStore{}, &fakePublisher{err: errors.New("circuit breaker is open")})
	e, err := s.Record(context.Background(), core.Entry{Category: "x", Amount: core.Money{Cents: 1}})
	if err != nil || e.ID != 1 {
		t.Fatalf("publish failure must not fail the insert: %+v %v", e, err)
	}
}

func TestRecordWithoutPublisher(t *testing.T) {
	s := newTestService(&fakeStore{}, nil)
	if _, err := s.Record(context.Background(), core.Entry{Category: "x"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
}

func TestEntryService_Close(t *testing.T) {
	store := &fakeStore{}
	s := NewEntryService(store, nil)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !store.closed {
		t.Fatal("store should be closed")
	}
}

func TestRejectionReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{core.ErrMissingAmount, "missing_amount"},
		{core.ErrInvalidAmount, "invalid_amount"},
		{core.ErrInvalidDate, "invalid_date"},
		{core.ErrEmptyCategory, "validation"},
		{core.ErrVoucherRefTooLong, "validation"},
		{errors.New("disk full"), "store"},
	}
	for _, tc := range cases {
		if got := RejectionReason(tc.err); got != tc.want {
			t.Fatalf("RejectionReason(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
