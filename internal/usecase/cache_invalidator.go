package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
)

var _ ports.InvalidationApplier = (*CacheInvalidator)(nil)

// CacheInvalidator — применяет события об изменениях каталога у провайдера к локальному кэшу.
type CacheInvalidator struct {
	cache ports.CatalogCache
	log   ports.Logger
}

func NewCacheInvalidator(cache ports.CatalogCache, log ports.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, log: log}
}

// Apply — item очищает только запись товара, catalog — весь каталог.
// Событие неизвестного типа игнорируется.
func (s *CacheInvalidator) Apply(ctx context.Context, ev domain.InvalidationEvent) error {
	switch ev.Type {
	case domain.InvalidateItem:
		if err := s.cache.ClearByID(ctx, ev.ItemID); err != nil {
			return fmt.Errorf("clear item %s: %w", ev.ItemID, err)
		}
		s.log.Infof(ctx, "cache invalidated item=%s", ev.ItemID)
	case domain.InvalidateCatalog:
		if err := s.cache.ClearAll(ctx); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
		s.log.Infof(ctx, "cache invalidated catalog")
	default:
		s.log.Warnf(ctx, "unknown invalidation type=%q ignored", ev.Type)
	}
	return nil
}
