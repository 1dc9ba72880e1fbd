package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/wildink/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	c, err := cfg.LoadWithPrefix("STORE_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP header/idle timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 8*time.Second || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP handler/graceful timeouts wrong: %+v", c.HTTP)
	}

	// Metrics
	if c.Metrics.Addr != ":2112" {
		t.Fatalf("Metrics.Addr: want :2112, got %q", c.Metrics.Addr)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "wildink-storefront" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Cache
	if c.Cache.Backend != "memory" || c.Cache.Namespace != "wildink" {
		t.Fatalf("Cache backend/namespace wrong: %+v", c.Cache)
	}
	if c.Cache.DefaultTTL != 5*time.Minute || c.Cache.BuildTTL != 365*24*time.Hour {
		t.Fatalf("Cache TTLs wrong: %+v", c.Cache)
	}
	if !c.Cache.EmptyFilterIsMiss {
		t.Fatalf("Cache.EmptyFilterIsMiss: want true by default")
	}

	// Postgres
	if c.Postgres.DSN == "" || c.Postgres.MaxConns != 10 || !c.Postgres.AutoMigrate {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}

	// Kafka
	if c.Kafka.Enabled {
		t.Fatalf("Kafka.Enabled: want false by default")
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("Kafka.Brokers: want [kafka:9092], got %v", c.Kafka.Brokers)
	}
	if c.Kafka.Topic != "catalog-invalidations" || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProcessTimeout != 5*time.Second || c.Kafka.RetryInitial != 1*time.Second || c.Kafka.RetryMax != 30*time.Second {
		t.Fatalf("Kafka timeouts wrong: %+v", c.Kafka)
	}

	// Airtable
	if c.Airtable.BaseURL != "https://api.airtable.com/v0" || c.Airtable.CatalogTable != "catalog" || c.Airtable.OrdersTable != "orders" {
		t.Fatalf("Airtable defaults wrong: %+v", c.Airtable)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "STORE_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_METRICS_ADDR", "")
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv(p+"_CACHE_BACKEND", "pebble")
	t.Setenv(p+"_CACHE_PEBBLE_DIR", "/var/lib/wildink")
	t.Setenv(p+"_CACHE_DEFAULT_TTL", "90s")
	t.Setenv(p+"_CACHE_EMPTY_FILTER_IS_MISS", "false")
	t.Setenv(p+"_KAFKA_ENABLED", "true")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_START_OFFSET", "first")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")
	t.Setenv("AIRTABLE_API_KEY", "key-1")
	t.Setenv("AIRTABLE_BASE_ID", "app1")
	t.Setenv("AIRTABLE_TIMEOUT", "3s")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.Metrics.Addr != "" {
		t.Fatalf("Metrics.Addr override wrong: %q", c.Metrics.Addr)
	}
	if !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.Cache.Backend != "pebble" || c.Cache.PebbleDir != "/var/lib/wildink" ||
		c.Cache.DefaultTTL != 90*time.Second || c.Cache.EmptyFilterIsMiss {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if !c.Kafka.Enabled || !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) || c.Kafka.StartOffset != "first" {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if c.Airtable.APIKey != "key-1" || c.Airtable.BaseID != "app1" || c.Airtable.Timeout != 3*time.Second {
		t.Fatalf("Airtable overrides wrong: %+v", c.Airtable)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение — но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "STORE_TEST_BAD"
	t.Setenv(p+"_CACHE_DEFAULT_TTL", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}

func TestLoadAirtable_InvalidTimeout(t *testing.T) {
	t.Setenv("AIRTABLE_TIMEOUT", "soon")
	if _, err := cfg.LoadAirtable(); err == nil {
		t.Fatalf("expected error for invalid AIRTABLE_TIMEOUT")
	}
}
