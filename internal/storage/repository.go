package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kassenbuch/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the ledger store: schema setup, single-row insert and
// the ordered full read.
type SQLiteRepository struct {
	db      *sql.DB
	path    string
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db, path: dbPath, queries: New(db)}
	if err := repo.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewWithDB wraps an already opened database. The schema is assumed to exist.
func NewWithDB(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, queries: New(db)}
}

// InitSchema creates the entry table and its date index when missing.
func (r *SQLiteRepository) InitSchema() error {
	if r.path == "" {
		return storeErr("init schema", errors.New("no database path"))
	}
	return storeErr("init schema", RunMigrations(r.path))
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks the database connection.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return storeErr("ping", r.db.PingContext(ctx))
}

// Insert appends one entry and returns it with the assigned id.
func (r *SQLiteRepository) Insert(ctx context.Context, e core.Entry) (core.Entry, error) {
	raw := e.RawDate
	if raw == "" {
		raw = e.Date.ISO()
	}
	id, err := r.queries.CreateEntry(ctx, CreateEntryParams{
		Belegnr:      e.VoucherRef,
		Datum:        raw,
		Kategorie:    e.Category,
		Beschreibung: sql.NullString{String: e.Description, Valid: e.Description != ""},
		BetragCents:  e.Amount.Cents,
	})
	if err != nil {
		return core.Entry{}, storeErr("insert", err)
	}

	e.ID = id
	e.RawDate = raw
	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", id,
		"date", raw,
		"category", e.Category,
		"amount_cents", e.Amount.Cents)
	return e, nil
}

// SelectAllOrdered returns every entry ordered by date, then id.
func (r *SQLiteRepository) SelectAllOrdered(ctx context.Context) ([]core.Entry, error) {
	rows, err := r.queries.ListEntries(ctx)
	if err != nil {
		return nil, storeErr("select all", err)
	}
	entries := make([]core.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.toEntry()
	}
	return entries, nil
}

// GetEntry loads one entry by id.
func (r *SQLiteRepository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	row, err := r.queries.GetEntry(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, storeErr("get entry", ErrNotFound)
	}
	if err != nil {
		return core.Entry{}, storeErr("get entry", err)
	}
	return row.toEntry(), nil
}

// Count returns the number of stored entries.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountEntries(ctx)
	return n, storeErr("count", err)
}

// toEntry keeps an unparseable datum as RawDate and leaves Date empty, which
// makes the entry invisible in every view.
func (row EntryRow) toEntry() core.Entry {
	date, err := core.ParseDate(row.Datum)
	if err != nil {
		date = core.Date{}
	}
	return core.Entry{
		ID:          row.ID,
		VoucherRef:  row.Belegnr,
		Date:        date,
		RawDate:     row.Datum,
		Category:    row.Kategorie,
		Description: row.Beschreibung.String,
		Amount:      core.Money{Cents: row.BetragCents},
	}
}
