package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// EntryRow mirrors one row of the entry table.
type EntryRow struct {
	ID           int64
	Belegnr      string
	Datum        string
	Kategorie    string
	Beschreibung sql.NullString
	BetragCents  int64
}

type CreateEntryParams struct {
	Belegnr      string
	Datum        string
	Kategorie    string
	Beschreibung sql.NullString
	BetragCents  int64
}

const createEntry = `INSERT INTO entry (belegnr, datum, kategorie, beschreibung, betrag_cents)
VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createEntry,
		arg.Belegnr,
		arg.Datum,
		arg.Kategorie,
		arg.Beschreibung,
		arg.BetragCents,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listEntries = `SELECT id, belegnr, datum, kategorie, beschreibung, betrag_cents
FROM entry
ORDER BY date(datum), id`

func (q *Queries) ListEntries(ctx context.Context) ([]EntryRow, error) {
	rows, err := q.db.QueryContext(ctx, listEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EntryRow
	for rows.Next() {
		var i EntryRow
		if err := rows.Scan(
			&i.ID,
			&i.Belegnr,
			&i.Datum,
			&i.Kategorie,
			&i.Beschreibung,
			&i.BetragCents,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getEntry = `SELECT id, belegnr, datum, kategorie, beschreibung, betrag_cents
FROM entry
WHERE id = ?`

func (q *Queries) GetEntry(ctx context.Context, id int64) (EntryRow, error) {
	row := q.db.QueryRowContext(ctx, getEntry, id)
	var i EntryRow
	err := row.Scan(
		&i.ID,
		&i.Belegnr,
		&i.Datum,
		&i.Kategorie,
		&i.Beschreibung,
		&i.BetragCents,
	)
	return i, err
}

const countEntries = `SELECT COUNT(*) FROM entry`

func (q *Queries) CountEntries(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEntries)
	var count int64
	err := row.Scan(&count)
	return count, err
}
