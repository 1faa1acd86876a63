package sheets

import (
	"context"

	"kassenbuch/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryWriter appends one immutable entry and returns it with its id.
	EntryWriter interface {
		Insert(ctx context.Context, e core.Entry) (core.Entry, error)
	}

	// EntryReader returns every entry ordered by date, then id.
	EntryReader interface {
		SelectAllOrdered(ctx context.Context) ([]core.Entry, error)
	}

	// EntryGetter loads one entry by id.
	EntryGetter interface {
		GetEntry(ctx context.Context, id int64) (core.Entry, error)
	}

	EntryStore interface {
		EntryWriter
		EntryReader
		EntryGetter
	}

	// EntryMirror copies stored entries to an external spreadsheet.
	EntryMirror interface {
		AppendEntry(ctx context.Context, e core.Entry) (rowRef string, err error)
	}
)
