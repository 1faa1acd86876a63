package backend

import (
	"context"
	"time"

	"kassenbuch/internal/core"
	"kassenbuch/internal/sheets"
)

// Backend is everything the UI and CLI need from the ledger.
type Backend interface {
	sheets.EntryStore
	Create(ctx context.Context, in core.NewEntry) (core.Entry, error)
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function.
// Ping is nil when the backend has nothing to check. EventsHealthy is nil
// when no event publisher is configured.
type BackendResult struct {
	Backend       Backend
	Ping          func(ctx context.Context) error
	EventsHealthy func() bool
	Cleanup       CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Memory backend seed directory
	DataDirectory string

	// Optional event publishing
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Snapshot cache TTL, zero disables caching
	CacheTTL time.Duration
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
