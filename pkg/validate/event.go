package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/wildink/internal/domain"
)

// ErrInvalidEvent — сообщение об инвалидации не удалось разобрать или оно неполное.
// Такие сообщения не повторяются.
var ErrInvalidEvent = errors.New("invalidation event validation failed")

// ParseInvalidationEvent — строгий разбор события: неизвестные поля и хвост после объекта запрещены.
func ParseInvalidationEvent(raw []byte) (*domain.InvalidationEvent, error) {
	var ev domain.InvalidationEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidEvent, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidEvent)
	}

	switch ev.Type {
	case domain.InvalidateCatalog:
	case domain.InvalidateItem:
		if ev.ItemID == "" {
			return nil, fmt.Errorf("%w: id обязателен для type=item", ErrInvalidEvent)
		}
	default:
		return nil, fmt.Errorf("%w: неизвестный type=%q", ErrInvalidEvent, ev.Type)
	}
	return &ev, nil
}
