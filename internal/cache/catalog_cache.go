package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/metrics"
)

// Метка keyspace для метрик.
const (
	keyspaceAll   = "all"
	keyspaceItem  = "item"
	keyspaceDraft = "draft"
)

var _ ports.CatalogCache = (*CatalogCache)(nil)

// CatalogCache — кэш каталога поверх ports.CacheStorage.
// Срок жизни проверяется лениво при чтении; устаревшая запись удаляется только своя.
type CatalogCache struct {
	storage    ports.CacheStorage
	log        ports.Logger
	snapshot   ports.SnapshotSource
	keys       keys
	defaultTTL time.Duration
	buildTTL   time.Duration
	now        func() time.Time

	initOnce sync.Once
}

// Option — настройка CatalogCache.
type Option func(*CatalogCache)

// WithClock — подмена часов (для тестов истечения TTL).
func WithClock(now func() time.Time) Option {
	return func(c *CatalogCache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithNamespace — префикс ключей; по умолчанию "wildink".
func WithNamespace(ns string) Option {
	return func(c *CatalogCache) { c.keys = newKeys(ns) }
}

// WithTTL — TTL по умолчанию и TTL данных сборки; нулевые значения не меняют настройку.
func WithTTL(defaultTTL, buildTTL time.Duration) Option {
	return func(c *CatalogCache) {
		if defaultTTL > 0 {
			c.defaultTTL = defaultTTL
		}
		if buildTTL > 0 {
			c.buildTTL = buildTTL
		}
	}
}

// WithSnapshot — источник снапшота для InitializeWithBuildData.
func WithSnapshot(src ports.SnapshotSource) Option {
	return func(c *CatalogCache) { c.snapshot = src }
}

// NewCatalogCache — DI-конструктор. nil-хранилище трактуется как недоступное.
func NewCatalogCache(storage ports.CacheStorage, log ports.Logger, opts ...Option) *CatalogCache {
	if storage == nil {
		storage = UnavailableStorage{}
	}
	c := &CatalogCache{
		storage:    storage,
		log:        log,
		keys:       newKeys(DefaultNamespace),
		defaultTTL: DefaultTTL,
		buildTTL:   BuildTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CatalogCache) GetAll(ctx context.Context) ([]domain.Item, ports.CacheResult) {
	var items []domain.Item
	res := c.read(ctx, c.keys.all, keyspaceAll, &items)
	if !res.Hit() {
		return nil, res
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, res
}

func (c *CatalogCache) GetByID(ctx context.Context, id string) (*domain.Item, ports.CacheResult) {
	var item *domain.Item
	res := c.read(ctx, c.keys.item(id), keyspaceItem, &item)
	if !res.Hit() {
		return nil, res
	}
	if item == nil {
		// {"data": null} — запись повреждена, оставляем как есть.
		metrics.CacheOps.WithLabelValues(keyspaceItem, "error").Inc()
		return nil, ports.CacheResult{Status: ports.CacheError, Err: fmt.Errorf("cache entry %s: empty data", c.keys.item(id))}
	}
	return item, res
}

func (c *CatalogCache) SetAll(ctx context.Context, items []domain.Item, ttl time.Duration) error {
	if items == nil {
		items = []domain.Item{}
	}
	return c.write(ctx, c.keys.all, keyspaceAll, items, ttl)
}

func (c *CatalogCache) SetByID(ctx context.Context, id string, item *domain.Item, ttl time.Duration) error {
	if item == nil {
		return fmt.Errorf("cache set %s: nil item", c.keys.item(id))
	}
	return c.write(ctx, c.keys.item(id), keyspaceItem, item, ttl)
}

// ClearAll — удаляет список целиком и все записи отдельных товаров (полный обход ключей).
// Черновики оформления не затрагиваются.
func (c *CatalogCache) ClearAll(ctx context.Context) error {
	var errs []error
	if err := c.storage.Delete(ctx, c.keys.all); err != nil {
		errs = append(errs, fmt.Errorf("cache delete %s: %w", c.keys.all, err))
	}

	keys, err := c.storage.Keys(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("cache keys: %w", err))
	}
	removed := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, c.keys.itemPrefix) {
			continue
		}
		if delErr := c.storage.Delete(ctx, key); delErr != nil {
			errs = append(errs, fmt.Errorf("cache delete %s: %w", key, delErr))
			continue
		}
		removed++
	}

	metrics.CacheOps.WithLabelValues(keyspaceAll, "clear").Inc()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	c.log.Infof(ctx, "catalog cache cleared items=%d", removed)
	return nil
}

func (c *CatalogCache) ClearByID(ctx context.Context, id string) error {
	metrics.CacheOps.WithLabelValues(keyspaceItem, "clear").Inc()
	if err := c.storage.Delete(ctx, c.keys.item(id)); err != nil {
		return fmt.Errorf("cache delete %s: %w", c.keys.item(id), err)
	}
	return nil
}

func (c *CatalogCache) HasData(ctx context.Context) bool {
	_, res := c.GetAll(ctx)
	return res.Hit()
}

func (c *CatalogCache) HasItem(ctx context.Context, id string) bool {
	_, res := c.GetByID(ctx, id)
	return res.Hit()
}

// PrePopulate — записывает список и каждый товар отдельно с TTL данных сборки.
// Товары без id в отдельные записи не попадают.
func (c *CatalogCache) PrePopulate(ctx context.Context, items []domain.Item) error {
	c.log.Infof(ctx, "pre-populating catalog cache with %d build-time items", len(items))

	var errs []error
	if err := c.SetAll(ctx, items, c.buildTTL); err != nil {
		errs = append(errs, err)
	}
	for idx := range items {
		if items[idx].ID == "" {
			continue
		}
		if err := c.SetByID(ctx, items[idx].ID, &items[idx], c.buildTTL); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InitializeWithBuildData — не более одного раза на экземпляр загружает снапшот сборки.
// Отсутствующий, пустой или нечитаемый снапшот — не ошибка.
func (c *CatalogCache) InitializeWithBuildData(ctx context.Context) {
	c.initOnce.Do(func() {
		if c.snapshot == nil {
			return
		}
		items, err := c.snapshot.Load(ctx)
		if err != nil {
			c.log.Warnf(ctx, "build-time catalog snapshot unavailable, will use provider err=%v", err)
			return
		}
		if len(items) == 0 {
			c.log.Infof(ctx, "no build-time catalog data found, will use provider")
			return
		}
		if err := c.PrePopulate(ctx, items); err != nil {
			c.log.Warnf(ctx, "pre-populate catalog cache failed err=%v", err)
		}
	})
}

// ------вспомогательные функции------

// read — общий путь чтения: декодирует запись, проверяет TTL, раскладывает data в dst.
func (c *CatalogCache) read(ctx context.Context, key, keyspace string, dst any) ports.CacheResult {
	raw, ok, err := c.storage.Get(ctx, key)
	if err != nil {
		metrics.CacheOps.WithLabelValues(keyspace, "error").Inc()
		c.log.Warnf(ctx, "cache read failed key=%s err=%v", key, err)
		return ports.CacheResult{Status: ports.CacheError, Err: err}
	}
	if !ok {
		metrics.CacheOps.WithLabelValues(keyspace, "miss").Inc()
		return ports.CacheResult{Status: ports.CacheMiss}
	}

	var ent entry
	if err := json.Unmarshal(raw, &ent); err != nil {
		metrics.CacheOps.WithLabelValues(keyspace, "error").Inc()
		c.log.Warnf(ctx, "cache entry malformed key=%s err=%v", key, err)
		return ports.CacheResult{Status: ports.CacheError, Err: fmt.Errorf("decode cache entry %s: %w", key, err)}
	}

	if !ent.valid(c.now()) {
		if delErr := c.storage.Delete(ctx, key); delErr != nil {
			c.log.Warnf(ctx, "cache evict failed key=%s err=%v", key, delErr)
		}
		metrics.CacheOps.WithLabelValues(keyspace, "expired").Inc()
		return ports.CacheResult{Status: ports.CacheExpired}
	}

	if err := json.Unmarshal(ent.Data, dst); err != nil {
		metrics.CacheOps.WithLabelValues(keyspace, "error").Inc()
		c.log.Warnf(ctx, "cache payload malformed key=%s err=%v", key, err)
		return ports.CacheResult{Status: ports.CacheError, Err: fmt.Errorf("decode cache payload %s: %w", key, err)}
	}

	metrics.CacheOps.WithLabelValues(keyspace, "hit").Inc()
	return ports.CacheResult{Status: ports.CacheHit}
}

// write — сериализует значение в запись с текущим временем и TTL.
func (c *CatalogCache) write(ctx context.Context, key, keyspace string, v any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache payload %s: %w", key, err)
	}
	raw, err := json.Marshal(entry{Data: data, Timestamp: c.now().UnixMilli(), TTL: ttl.Milliseconds()})
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	if err := c.storage.Set(ctx, key, raw); err != nil {
		metrics.CacheOps.WithLabelValues(keyspace, "error").Inc()
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	metrics.CacheOps.WithLabelValues(keyspace, "set").Inc()
	return nil
}
