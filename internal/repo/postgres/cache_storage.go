package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.CacheStorage = (*CacheStorage)(nil)

// CacheStorage — хранилище записей кэша в таблице cache_entries.
// Позволяет нескольким инстансам витрины делить один кэш каталога.
type CacheStorage struct {
	pool *pgxpool.Pool
}

// NewCacheStorage — конструктор; пул принадлежит вызывающему и закрывается им.
func NewCacheStorage(pool *pgxpool.Pool) *CacheStorage { return &CacheStorage{pool: pool} }

func (s *CacheStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM cache_entries WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select cache entry: %w", err)
	}
	return value, true, nil
}

func (s *CacheStorage) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO cache_entries (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value); err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}

func (s *CacheStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM cache_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func (s *CacheStorage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT key FROM cache_entries ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select cache keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan cache keys: %w", err)
	}
	return keys, nil
}

// Close — no-op: пулом управляет владелец.
func (s *CacheStorage) Close() error { return nil }
