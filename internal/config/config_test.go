package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
env: "test"
order_db:
  dsn: "postgres://localhost/orders"
redis:
  driver: "memory"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "test" {
		t.Errorf("Env = %q, want test", cfg.Env)
	}
	if cfg.Cache.RecentLimit != 10 {
		t.Errorf("RecentLimit = %d, want 10", cfg.Cache.RecentLimit)
	}
	if cfg.Cache.OrderTTL != 60*time.Second {
		t.Errorf("OrderTTL = %v, want 60s", cfg.Cache.OrderTTL)
	}
	if cfg.Redis.OpTimeout != time.Second {
		t.Errorf("OpTimeout = %v, want 1s", cfg.Redis.OpTimeout)
	}
	if cfg.KafkaService.Topic != "order-events" {
		t.Errorf("Topic = %q, want order-events", cfg.KafkaService.Topic)
	}
	if got := cfg.KafkaService.Brokers(); len(got) != 1 || got[0] != "localhost:9092" {
		t.Errorf("Brokers = %v", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
redis:
  driver: "redis"
  addr: "cache:6380"
cache:
  recent_limit: 3
  count_ttl: "30s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.Addr != "cache:6380" {
		t.Errorf("Addr = %q", cfg.Redis.Addr)
	}
	if cfg.Cache.RecentLimit != 3 {
		t.Errorf("RecentLimit = %d, want 3", cfg.Cache.RecentLimit)
	}
	if cfg.Cache.CountTTL != 30*time.Second {
		t.Errorf("CountTTL = %v, want 30s", cfg.Cache.CountTTL)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "redis:\n  driver: \"memcached\"\n"},
		{"zero recent limit", "redis:\n  driver: \"memory\"\ncache:\n  recent_limit: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error")
		}
	})
}
