package usecase_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/wildink/internal/cache"
	"github.com/Gunvolt24/wildink/internal/cache/memory"
	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/usecase"
)

func TestCacheInvalidator_Item(t *testing.T) {
	c := cache.NewCatalogCache(memory.NewStorage(), noopLogger{})
	ctx := context.Background()
	_ = c.PrePopulate(ctx, catalogItems())

	inv := usecase.NewCacheInvalidator(c, noopLogger{})
	if err := inv.Apply(ctx, domain.InvalidationEvent{Type: domain.InvalidateItem, ItemID: "1"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if c.HasItem(ctx, "1") || !c.HasItem(ctx, "2") || !c.HasData(ctx) {
		t.Fatalf("item event must clear only the per-item entry")
	}
}

func TestCacheInvalidator_Catalog(t *testing.T) {
	c := cache.NewCatalogCache(memory.NewStorage(), noopLogger{})
	ctx := context.Background()
	_ = c.PrePopulate(ctx, catalogItems())

	inv := usecase.NewCacheInvalidator(c, noopLogger{})
	if err := inv.Apply(ctx, domain.InvalidationEvent{Type: domain.InvalidateCatalog}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if c.HasData(ctx) || c.HasItem(ctx, "2") {
		t.Fatalf("catalog event must clear everything")
	}
}

func TestCacheInvalidator_UnknownTypeAndStorageErrors(t *testing.T) {
	c := cache.NewCatalogCache(memory.NewStorage(), noopLogger{})
	ctx := context.Background()
	_ = c.PrePopulate(ctx, catalogItems())

	inv := usecase.NewCacheInvalidator(c, noopLogger{})
	if err := inv.Apply(ctx, domain.InvalidationEvent{Type: "price"}); err != nil {
		t.Fatalf("unknown type must be ignored, got %v", err)
	}
	if !c.HasData(ctx) {
		t.Fatalf("unknown type must not touch the cache")
	}

	broken := usecase.NewCacheInvalidator(cache.NewCatalogCache(cache.UnavailableStorage{}, noopLogger{}), noopLogger{})
	if err := broken.Apply(ctx, domain.InvalidationEvent{Type: domain.InvalidateItem, ItemID: "1"}); err == nil {
		t.Fatalf("storage failure must be returned for a retry")
	}
}
