package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/metrics"
)

var _ ports.CacheStorage = (*Storage)(nil)

type slot struct {
	value []byte
	seq   uint64 // порядковый номер последней записи
}

// Storage — хранилище ключ/значение в памяти процесса.
// Размер не ограничен: записи удаляются только явно, сроки жизни отслеживает кэш каталога.
type Storage struct {
	mu    sync.RWMutex
	slots map[string]slot
	seq   uint64
}

func NewStorage() *Storage {
	return &Storage{slots: make(map[string]slot)}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.slots[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(sl.value), true, nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.slots[key] = slot{value: cloneBytes(value), seq: s.seq}
	metrics.CacheSize.Set(float64(len(s.slots)))
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[key]; ok {
		delete(s.slots, key)
		metrics.CacheSize.Set(float64(len(s.slots)))
	}
	return nil
}

// Keys — снимок ключей от последней записи к самой ранней.
func (s *Storage) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	type keyed struct {
		key string
		seq uint64
	}
	all := make([]keyed, 0, len(s.slots))
	for k, sl := range s.slots {
		all = append(all, keyed{key: k, seq: sl.seq})
	}
	s.mu.RUnlock()

	slices.SortFunc(all, func(a, b keyed) int { return cmp.Compare(b.seq, a.seq) })

	out := make([]string, len(all))
	for i, k := range all {
		out[i] = k.key
	}
	return out, nil
}

func (s *Storage) Close() error { return nil }

// Len — текущее число ключей.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

// ------вспомогательные функции------

// cloneBytes — копия значения, чтобы вызывающий код не менял данные внутри хранилища.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
