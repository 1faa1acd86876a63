package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"kassenbuch/internal/config"
	"kassenbuch/internal/core"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", CacheTTL: time.Minute})
	if err != nil || cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" || cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected conversion: %+v err=%v", cfg, err)
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		config   Config
		wantPing bool
	}{
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db"), CacheTTL: time.Minute}, true},
		{"memory", Config{Type: MemoryBackend, DataDirectory: t.TempDir()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewFactory(nil).CreateBackend(ctx, tt.config)
			if err != nil {
				t.Fatalf("CreateBackend: %v", err)
			}
			defer res.Cleanup()

			if (res.Ping != nil) != tt.wantPing {
				t.Fatalf("ping presence = %v, want %v", res.Ping != nil, tt.wantPing)
			}
			if res.Ping != nil {
				if err := res.Ping(ctx); err != nil {
					t.Fatalf("ping: %v", err)
				}
			}

			e, err := res.Backend.Create(ctx, core.NewEntry{Date: "2024-01-03", Category: core.CategoryExpense, AmountText: "5"})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			all, err := res.Backend.SelectAllOrdered(ctx)
			if err != nil || len(all) != 1 || all[0].ID != e.ID || all[0].Amount.Cents != -500 {
				t.Fatalf("unexpected entries %+v err=%v", all, err)
			}
		})
	}
}

func TestCreateBackendInvalid(t *testing.T) {
	if _, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "sheets"}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend}); err == nil {
		t.Fatal("expected error for missing path")
	}
}
