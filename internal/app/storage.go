package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wildink/config"
	"github.com/Gunvolt24/wildink/internal/cache"
	"github.com/Gunvolt24/wildink/internal/cache/memory"
	"github.com/Gunvolt24/wildink/internal/cache/pebblestore"
	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/internal/repo/postgres"
)

const (
	BackendMemory   = "memory"
	BackendPebble   = "pebble"
	BackendPostgres = "postgres"
	BackendNone     = "none"
)

// openStorage — хранилище кэша по конфигурации; release освобождает его ресурсы.
func openStorage(ctx context.Context, cfg *config.Cache, pg *config.Postgres, log ports.Logger) (ports.CacheStorage, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendMemory:
		log.Infof(ctx, "cache storage: memory")
		return memory.NewStorage(), func() {}, nil

	case BackendPebble:
		st, err := pebblestore.Open(cfg.PebbleDir)
		if err != nil {
			return nil, func() {}, fmt.Errorf("open pebble cache storage: %w", err)
		}
		log.Infof(ctx, "cache storage: pebble dir=%s", cfg.PebbleDir)
		return st, func() {
			if cErr := st.Close(); cErr != nil {
				log.Warnf(ctx, "close pebble cache storage: %v", cErr)
			}
		}, nil

	case BackendPostgres:
		if pg.AutoMigrate {
			if err := postgres.Migrate(ctx, pg.DSN); err != nil {
				return nil, func() {}, fmt.Errorf("migrate postgres cache storage: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, pg.DSN, pg.MaxConns)
		if err != nil {
			return nil, func() {}, fmt.Errorf("open postgres cache storage: %w", err)
		}
		log.Infof(ctx, "cache storage: postgres")
		return postgres.NewCacheStorage(pool), pool.Close, nil

	case BackendNone:
		log.Warnf(ctx, "cache storage disabled, every read goes to the provider")
		return cache.UnavailableStorage{}, func() {}, nil

	default:
		return nil, func() {}, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
