package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/metrics"
)

var _ ports.DraftStore = (*DraftStore)(nil)

// ErrEmptyDraftID — пустой id черновика.
var ErrEmptyDraftID = errors.New("empty draft id")

// storedDraft — черновик в хранилище: поля формы и время последнего сохранения.
type storedDraft struct {
	domain.CheckoutForm
	LastSaved time.Time `json:"lastSaved"`
}

// DraftStore — черновики формы оформления заказа в том же хранилище, что и кэш каталога.
// Черновики не истекают; сбои хранилища логируются и не пробрасываются в чтения.
type DraftStore struct {
	storage ports.CacheStorage
	log     ports.Logger
	keys    keys
	now     func() time.Time
}

// NewDraftStore — конструктор; namespace "" означает пространство имён по умолчанию.
func NewDraftStore(storage ports.CacheStorage, log ports.Logger, namespace string) *DraftStore {
	if storage == nil {
		storage = UnavailableStorage{}
	}
	return &DraftStore{storage: storage, log: log, keys: newKeys(namespace), now: time.Now}
}

func (s *DraftStore) Save(ctx context.Context, id string, form *domain.CheckoutForm) error {
	if id == "" {
		return ErrEmptyDraftID
	}
	if form == nil {
		return fmt.Errorf("draft %s: nil form", id)
	}
	raw, err := json.Marshal(storedDraft{CheckoutForm: *form, LastSaved: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", id, err)
	}
	if err := s.storage.Set(ctx, s.keys.form(id), raw); err != nil {
		metrics.CacheOps.WithLabelValues(keyspaceDraft, "error").Inc()
		s.log.Warnf(ctx, "save checkout draft failed id=%s err=%v", id, err)
		return fmt.Errorf("save draft %s: %w", id, err)
	}
	metrics.CacheOps.WithLabelValues(keyspaceDraft, "set").Inc()
	return nil
}

// Get — поля формы без служебной метки lastSaved.
func (s *DraftStore) Get(ctx context.Context, id string) (*domain.CheckoutForm, bool) {
	raw, ok, err := s.storage.Get(ctx, s.keys.form(id))
	if err != nil {
		metrics.CacheOps.WithLabelValues(keyspaceDraft, "error").Inc()
		s.log.Warnf(ctx, "read checkout draft failed id=%s err=%v", id, err)
		return nil, false
	}
	if !ok {
		metrics.CacheOps.WithLabelValues(keyspaceDraft, "miss").Inc()
		return nil, false
	}
	var stored storedDraft
	if err := json.Unmarshal(raw, &stored); err != nil {
		metrics.CacheOps.WithLabelValues(keyspaceDraft, "error").Inc()
		s.log.Warnf(ctx, "checkout draft malformed id=%s err=%v", id, err)
		return nil, false
	}
	metrics.CacheOps.WithLabelValues(keyspaceDraft, "hit").Inc()
	form := stored.CheckoutForm
	return &form, true
}

func (s *DraftStore) Clear(ctx context.Context, id string) error {
	if err := s.storage.Delete(ctx, s.keys.form(id)); err != nil {
		s.log.Warnf(ctx, "clear checkout draft failed id=%s err=%v", id, err)
		return fmt.Errorf("clear draft %s: %w", id, err)
	}
	metrics.CacheOps.WithLabelValues(keyspaceDraft, "clear").Inc()
	return nil
}

func (s *DraftStore) Has(ctx context.Context, id string) bool {
	_, ok := s.Get(ctx, id)
	return ok
}
