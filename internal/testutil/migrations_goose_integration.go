//go:build integration

package testutil

import (
	"context"
	"time"

	"github.com/Gunvolt24/wildink/internal/repo/postgres"
)

// ApplyMigrationsGoose применяет встроенные миграции хранилища кэша к тестовой БД.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return postgres.Migrate(ctx, dsn)
}
