package ports

import (
	"context"

	"github.com/Gunvolt24/wildink/internal/domain"
)

// MessageConsumer — фоновый потребитель сообщений (инвалидация кэша каталога).
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}

// InvalidationApplier — применяет уже разобранное событие инвалидации к кэшу.
// Ошибка означает сбой хранилища: событие нужно применить повторно.
type InvalidationApplier interface {
	Apply(ctx context.Context, ev domain.InvalidationEvent) error
}
