package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"kassenbuch/internal/core"
	ports "kassenbuch/internal/sheets"
)

// ErrNotFound is returned by GetEntry for unknown ids.
var ErrNotFound = fmt.Errorf("entry not found")

var (
	_ ports.EntryStore  = (*Store)(nil)
	_ ports.EntryMirror = (*Mirror)(nil)
)

// Store keeps entries in memory. Ids are assigned sequentially from 1.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Entry
}

func New(seed ...core.Entry) *Store {
	s := &Store{nextID: 1}
	for _, e := range seed {
		_, _ = s.Insert(context.Background(), e)
	}
	return s
}

// NewFromFiles seeds the store from base/seed_entries.txt when present. Each
// line is "date;category;amount;description;voucher", trailing fields optional.
func NewFromFiles(base string) *Store {
	return New(readEntries(filepath.Join(base, "seed_entries.txt"))...)
}

// Insert stores e and returns it with the assigned id.
func (s *Store) Insert(_ context.Context, e core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	if e.RawDate == "" {
		e.RawDate = e.Date.ISO()
	}
	s.items = append(s.items, e)
	return e, nil
}

// SelectAllOrdered returns a copy ordered by date, then id. Entries with an
// unparseable date sort first, as SQLite's date() yields NULL for them.
func (s *Store) SelectAllOrdered(_ context.Context) ([]core.Entry, error) {
	s.mu.Lock()
	out := append([]core.Entry(nil), s.items...)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		if !di.Equal(dj.Time) {
			return di.Before(dj)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetEntry(_ context.Context, id int64) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Entry{}, ErrNotFound
}

// Mirror records appended rows in memory; used when no spreadsheet is configured.
type Mirror struct {
	mu   sync.Mutex
	rows [][]string
}

func NewMirror() *Mirror { return &Mirror{} }

func (m *Mirror) AppendEntry(_ context.Context, e core.Entry) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, []string{
		fmt.Sprint(e.ID), e.VoucherRef, e.RawDate, e.Category, e.Description,
		core.PlainAmount(e.Amount.Cents),
	})
	return fmt.Sprintf("mem:%d", len(m.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (m *Mirror) Rows() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func readEntries(path string) []core.Entry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []core.Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if e, ok := parseSeedLine(line); ok {
			out = append(out, e)
		}
	}
	return out
}

func parseSeedLine(line string) (core.Entry, bool) {
	cols := strings.Split(line, ";")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	if len(cols) < 3 {
		return core.Entry{}, false
	}
	cents, err := core.ParseToCents(cols[2])
	if err != nil {
		return core.Entry{}, false
	}
	// Bad dates are kept: they stay in the store but never show in a view.
	date, _ := core.ParseDate(cols[0])
	e := core.Entry{
		Date:     date,
		RawDate:  cols[0],
		Category: cols[1],
		Amount:   core.Money{Cents: cents},
	}
	if len(cols) > 3 {
		e.Description = cols[3]
	}
	if len(cols) > 4 {
		e.VoucherRef = cols[4]
	}
	return e, true
}
