package domain

// Типы событий инвалидации кэша каталога.
const (
	InvalidateItem    = "item"
	InvalidateCatalog = "catalog"
)

// InvalidationEvent — сообщение об изменении каталога у провайдера (правки вне системы).
type InvalidationEvent struct {
	Type   string `json:"type"`
	ItemID string `json:"id,omitempty"`
}
