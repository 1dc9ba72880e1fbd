package cache

import (
	"context"
	"errors"

	"github.com/Gunvolt24/wildink/internal/ports"
)

// ErrStorageUnavailable — долговременное хранилище недоступно в текущем окружении.
var ErrStorageUnavailable = errors.New("cache storage unavailable")

var _ ports.CacheStorage = UnavailableStorage{}

// UnavailableStorage — хранилище-заглушка: любое обращение завершается ErrStorageUnavailable.
type UnavailableStorage struct{}

func (UnavailableStorage) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, ErrStorageUnavailable
}

func (UnavailableStorage) Set(context.Context, string, []byte) error { return ErrStorageUnavailable }

func (UnavailableStorage) Delete(context.Context, string) error { return ErrStorageUnavailable }

func (UnavailableStorage) Keys(context.Context) ([]string, error) { return nil, ErrStorageUnavailable }

func (UnavailableStorage) Close() error { return nil }
