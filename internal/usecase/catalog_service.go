package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
)

// DefaultCatalogTable — таблица каталога у провайдера.
const DefaultCatalogTable = "catalog"

// Поля, по которым провайдер фильтрует каталог.
const (
	fieldID           = "id"
	fieldCategory     = "category"
	fieldAvailability = "availability"
)

var _ ports.CatalogReadService = (*CatalogService)(nil)

// CatalogService — чтение каталога: сначала кэш, при промахе — провайдер (один раз, без повторов).
type CatalogService struct {
	store ports.RecordStore  // источник истины
	cache ports.CatalogCache // локальный кэш с TTL
	log   ports.Logger

	table string
	// emptyFilterIsMiss — пустой результат фильтрации кэша считается промахом и уходит к провайдеру.
	emptyFilterIsMiss bool
}

// CatalogOption — настройка CatalogService.
type CatalogOption func(*CatalogService)

// WithCatalogTable — имя таблицы каталога.
func WithCatalogTable(table string) CatalogOption {
	return func(s *CatalogService) {
		if table != "" {
			s.table = table
		}
	}
}

// WithEmptyFilterIsMiss — политика для пустого результата фильтрации по кэшу (по умолчанию true).
func WithEmptyFilterIsMiss(v bool) CatalogOption {
	return func(s *CatalogService) { s.emptyFilterIsMiss = v }
}

// NewCatalogService — DI-конструктор.
func NewCatalogService(store ports.RecordStore, cache ports.CatalogCache, log ports.Logger, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		store:             store,
		cache:             cache,
		log:               log,
		table:             DefaultCatalogTable,
		emptyFilterIsMiss: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll — весь каталог; промах заполняет кэш.
func (s *CatalogService) GetAll(ctx context.Context) ([]domain.Item, error) {
	s.cache.InitializeWithBuildData(ctx)

	cached, res := s.cache.GetAll(ctx)
	if res.Hit() {
		s.log.Infof(ctx, "cache hit for catalog items=%d", len(cached))
		return cached, nil
	}
	s.log.Infof(ctx, "cache %s for catalog", res.Status)

	items, err := s.fetch(ctx, nil)
	if err != nil {
		return nil, err
	}
	if setErr := s.cache.SetAll(ctx, items, 0); setErr != nil {
		s.log.Warnf(ctx, "cache.SetAll failed err=%v", setErr)
	}
	return items, nil
}

// GetByID — товар по id; (nil, nil), если его нет. Отсутствие не кэшируется.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	s.cache.InitializeWithBuildData(ctx)

	cached, res := s.cache.GetByID(ctx, id)
	if res.Hit() {
		s.log.Infof(ctx, "cache hit for item=%s", id)
		return cached, nil
	}
	s.log.Infof(ctx, "cache %s for item=%s", res.Status, id)

	items, err := s.fetch(ctx, domain.FieldEquals(fieldID, id))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	item := items[0]
	if setErr := s.cache.SetByID(ctx, id, &item, 0); setErr != nil {
		s.log.Warnf(ctx, "cache.SetByID failed item=%s err=%v", id, setErr)
	}
	return &item, nil
}

// GetByCategory — товары категории: фильтр по кэшированному списку, иначе запрос к провайдеру.
func (s *CatalogService) GetByCategory(ctx context.Context, category string) ([]domain.Item, error) {
	return s.filtered(ctx, domain.FieldEquals(fieldCategory, category), func(it *domain.Item) bool {
		return it.Category == category
	})
}

// GetInStock — товары в наличии.
func (s *CatalogService) GetInStock(ctx context.Context) ([]domain.Item, error) {
	return s.filtered(ctx, domain.FieldEquals(fieldAvailability, domain.AvailabilityInStock), func(it *domain.Item) bool {
		return it.InStock()
	})
}

// Categories — уникальные непустые категории в порядке первого появления.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for idx := range items {
		c := items[idx].Category
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// ------вспомогательные функции------

// filtered — общий путь для запросов с фильтром. Результат провайдера не кэшируется.
func (s *CatalogService) filtered(ctx context.Context, filter *domain.Filter, match func(*domain.Item) bool) ([]domain.Item, error) {
	s.cache.InitializeWithBuildData(ctx)

	cached, res := s.cache.GetAll(ctx)
	if res.Hit() {
		out := make([]domain.Item, 0)
		for idx := range cached {
			if match(&cached[idx]) {
				out = append(out, cached[idx])
			}
		}
		if len(out) > 0 || !s.emptyFilterIsMiss {
			s.log.Infof(ctx, "cache hit for %s=%q items=%d", filter.Field, filter.Value, len(out))
			return out, nil
		}
		s.log.Infof(ctx, "cached catalog has no %s=%q, asking provider", filter.Field, filter.Value)
	}

	return s.fetch(ctx, filter)
}

// fetch — запрос к провайдеру и преобразование записей в товары.
func (s *CatalogService) fetch(ctx context.Context, filter *domain.Filter) ([]domain.Item, error) {
	start := time.Now()
	records, err := s.store.GetRecords(ctx, s.table, filter)
	if err != nil {
		s.log.Errorf(ctx, "provider fetch failed table=%s filter=%v err=%v", s.table, filter, err)
		return nil, err
	}
	items, err := domain.ItemsFromRecords(records)
	if err != nil {
		s.log.Errorf(ctx, "provider records malformed table=%s err=%v", s.table, err)
		return nil, err
	}
	s.log.Infof(ctx, "provider fetch table=%s items=%d took=%s", s.table, len(items), time.Since(start))
	return items, nil
}
