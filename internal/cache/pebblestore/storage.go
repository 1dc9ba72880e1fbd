// Package pebblestore — хранилище кэша каталога на диске (переживает перезапуск процесса).
package pebblestore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/cockroachdb/pebble"
)

var _ ports.CacheStorage = (*Storage)(nil)

// Storage — реализация ports.CacheStorage поверх PebbleDB.
type Storage struct {
	db *pebble.DB
}

// Open — открыть (или создать) базу в каталоге dir.
func Open(dir string) (*Storage, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("pebble get %s: %w", key, err)
	}
	defer closer.Close()
	// v действителен только до closer.Close()
	return append([]byte(nil), v...), true, nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	if err := s.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("pebble delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	it, err := s.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("pebble iter: %w", err)
	}
	defer it.Close()

	var out []string
	for it.First(); it.Valid(); it.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		out = append(out, string(it.Key()))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("pebble iter: %w", err)
	}
	return out, nil
}

func (s *Storage) Close() error { return s.db.Close() }
