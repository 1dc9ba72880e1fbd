package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record — запись провайдера: идентификатор, время создания и сырые поля.
type Record struct {
	ID          string          `json:"id"`
	CreatedTime time.Time       `json:"createdTime"`
	Fields      json.RawMessage `json:"fields"`
}

// Filter — предикат равенства по одному полю.
// Строится только через FieldEquals; в язык формул провайдера переводится адаптером.
type Filter struct {
	Field string
	Value string
}

// FieldEquals — фильтр {field} = value.
func FieldEquals(field, value string) *Filter {
	return &Filter{Field: field, Value: value}
}

// ItemsFromRecords — отбрасывает обёртку провайдера и оставляет поля товара.
func ItemsFromRecords(records []Record) ([]Item, error) {
	items := make([]Item, 0, len(records))
	for idx := range records {
		var item Item
		if err := json.Unmarshal(records[idx].Fields, &item); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", records[idx].ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// OrderFromRecord — заказ из записи провайдера.
func OrderFromRecord(rec *Record) (*Order, error) {
	var fields OrderFields
	if len(rec.Fields) > 0 {
		if err := json.Unmarshal(rec.Fields, &fields); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", rec.ID, err)
		}
	}
	return &Order{ID: rec.ID, CreatedTime: rec.CreatedTime, Fields: fields}, nil
}
