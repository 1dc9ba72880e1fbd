package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/wildink/internal/domain"
)

// CatalogCache — локальный кэш каталога с TTL и ленивым вытеснением.
// Ошибки хранилища не пробрасываются паникой: чтения возвращают CacheResult, записи — error.
type CatalogCache interface {
	GetAll(ctx context.Context) ([]domain.Item, CacheResult)
	GetByID(ctx context.Context, id string) (*domain.Item, CacheResult)

	// SetAll/SetByID — ttl <= 0 означает TTL по умолчанию.
	SetAll(ctx context.Context, items []domain.Item, ttl time.Duration) error
	SetByID(ctx context.Context, id string, item *domain.Item, ttl time.Duration) error

	ClearAll(ctx context.Context) error
	ClearByID(ctx context.Context, id string) error

	HasData(ctx context.Context) bool
	HasItem(ctx context.Context, id string) bool

	// PrePopulate — записать весь список и каждый товар с «билдовым» TTL.
	PrePopulate(ctx context.Context, items []domain.Item) error
	// InitializeWithBuildData — однократная загрузка снапшота, собранного при сборке.
	InitializeWithBuildData(ctx context.Context)
}

// SnapshotSource — источник статического снапшота каталога.
// Отсутствующий снапшот — не ошибка: (nil, nil).
type SnapshotSource interface {
	Load(ctx context.Context) ([]domain.Item, error)
}

// DraftStore — черновики формы оформления заказа.
type DraftStore interface {
	Save(ctx context.Context, id string, form *domain.CheckoutForm) error
	Get(ctx context.Context, id string) (*domain.CheckoutForm, bool)
	Clear(ctx context.Context, id string) error
	Has(ctx context.Context, id string) bool
}
