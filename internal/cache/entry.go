package cache

import (
	"encoding/json"
	"time"
)

// Значения по умолчанию для срока жизни записей.
const (
	DefaultTTL       = 5 * time.Minute
	BuildTTL         = 365 * 24 * time.Hour
	DefaultNamespace = "wildink"
)

// entry — формат записи в хранилище: {"data":…, "timestamp": unix ms, "ttl": ms}.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	TTL       int64           `json:"ttl"`
}

// valid — запись актуальна, пока прошло не больше ttl (граница включительно).
func (e *entry) valid(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp <= e.TTL
}

// keys — набор ключей одного пространства имён.
type keys struct {
	all        string
	itemPrefix string
	formPrefix string
}

func newKeys(namespace string) keys {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return keys{
		all:        namespace + "_catalog_cache",
		itemPrefix: namespace + "_catalog_item_",
		formPrefix: namespace + "_checkout_form_",
	}
}

func (k keys) item(id string) string { return k.itemPrefix + id }
func (k keys) form(id string) string { return k.formPrefix + id }
