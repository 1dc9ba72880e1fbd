package ports

import "context"

// CacheStorage — долговременное хранилище ключ/значение под кэшем каталога.
// Реализации обязаны быть потокобезопасными.
type CacheStorage interface {
	// Get — (value, true, nil) если ключ есть; (nil, false, nil) если нет.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete — удаление отсутствующего ключа не ошибка.
	Delete(ctx context.Context, key string) error
	// Keys — все ключи хранилища (для массовой очистки по префиксу).
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// CacheStatus — исход чтения из кэша.
type CacheStatus string

const (
	CacheHit     CacheStatus = "hit"
	CacheMiss    CacheStatus = "miss"
	CacheExpired CacheStatus = "expired"
	CacheError   CacheStatus = "error"
)

// CacheResult — результат чтения: статус и (для CacheError) причина.
type CacheResult struct {
	Status CacheStatus
	Err    error
}

// Hit — данные получены и актуальны.
func (r CacheResult) Hit() bool { return r.Status == CacheHit }
