package app

import (
	"testing"
	"time"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected MetricsAddr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Errorf("expected StorageDriver %s, got %s", StorageDriverMemory, cfg.StorageDriver)
	}
	if !cfg.PostgresAutoMigrate {
		t.Error("expected PostgresAutoMigrate to be true")
	}
	if cfg.OutboxPollInterval <= 0 {
		t.Error("expected OutboxPollInterval to be > 0")
	}
	if cfg.OutboxBatchSize <= 0 {
		t.Error("expected OutboxBatchSize to be > 0")
	}
	if cfg.OutboxMaxAttempts <= 0 {
		t.Error("expected OutboxMaxAttempts to be > 0")
	}
	if cfg.OutboxRetryDelay < 0 {
		t.Error("expected OutboxRetryDelay to be >= 0")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SHOP_HTTP_ADDR", ":8081")
	t.Setenv("SHOP_METRICS_ADDR", ":9091")
	t.Setenv("SHOP_STORAGE_DRIVER", "Postgres")
	t.Setenv("SHOP_POSTGRES_DSN", "postgres://user:pass@db:5432/shop")
	t.Setenv("SHOP_POSTGRES_AUTO_MIGRATE", "false")
	t.Setenv("SHOP_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("SHOP_OUTBOX_TOPIC", "custom.order.events")
	t.Setenv("SHOP_OUTBOX_POLL_INTERVAL", "2s")
	t.Setenv("SHOP_OUTBOX_BATCH_SIZE", "50")
	t.Setenv("SHOP_OUTBOX_MAX_ATTEMPTS", "5")
	t.Setenv("SHOP_OUTBOX_RETRY_DELAY", "100ms")

	cfg := FromEnv()

	if cfg.HTTPAddr != ":8081" {
		t.Errorf("expected HTTPAddr :8081, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9091" {
		t.Errorf("expected MetricsAddr :9091, got %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Errorf("expected postgres driver, got %s", cfg.StorageDriver)
	}
	if cfg.PostgresDSN != "postgres://user:pass@db:5432/shop" {
		t.Errorf("unexpected DSN %s", cfg.PostgresDSN)
	}
	if cfg.PostgresAutoMigrate {
		t.Error("expected PostgresAutoMigrate false")
	}
	if cfg.KafkaBrokers != "kafka-1:9092,kafka-2:9092" {
		t.Errorf("unexpected brokers %s", cfg.KafkaBrokers)
	}
	if cfg.OutboxTopic != "custom.order.events" {
		t.Errorf("unexpected outbox topic %s", cfg.OutboxTopic)
	}
	if cfg.OutboxPollInterval != 2*time.Second {
		t.Errorf("expected poll interval 2s, got %s", cfg.OutboxPollInterval)
	}
	if cfg.OutboxBatchSize != 50 {
		t.Errorf("expected batch size 50, got %d", cfg.OutboxBatchSize)
	}
	if cfg.OutboxMaxAttempts != 5 {
		t.Errorf("expected max attempts 5, got %d", cfg.OutboxMaxAttempts)
	}
	if cfg.OutboxRetryDelay != 100*time.Millisecond {
		t.Errorf("expected retry delay 100ms, got %s", cfg.OutboxRetryDelay)
	}
}

func TestFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("SHOP_POSTGRES_AUTO_MIGRATE", "definitely")
	t.Setenv("SHOP_OUTBOX_BATCH_SIZE", "many")
	t.Setenv("SHOP_OUTBOX_POLL_INTERVAL", "soon")

	cfg := FromEnv()
	defaults := DefaultConfig()

	if cfg.PostgresAutoMigrate != defaults.PostgresAutoMigrate {
		t.Error("invalid bool should keep default")
	}
	if cfg.OutboxBatchSize != defaults.OutboxBatchSize {
		t.Error("invalid int should keep default")
	}
	if cfg.OutboxPollInterval != defaults.OutboxPollInterval {
		t.Error("invalid duration should keep default")
	}
}

func TestConfig_ValueSemantics(t *testing.T) {
	original := DefaultConfig()
	modified := original
	modified.HTTPAddr = ":8081"

	if original.HTTPAddr != ":8080" {
		t.Error("original config was modified")
	}
	if modified.HTTPAddr != ":8081" {
		t.Error("copy was not modified")
	}
}
