package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
)

// ValidateItemFromJSON — строгий разбор и валидация одного товара.
func ValidateItemFromJSON(ctx context.Context, validator ports.ItemValidator, raw []byte) (*domain.Item, error) {
	var item domain.Item
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&item); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if err := validator.Validate(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// JSONResult — статистика валидации JSON-массива товаров.
type JSONResult struct {
	ValidCount   int
	InvalidCount int
}

// ValidateJSONArray — снапшот каталога: JSON-массив товаров.
// Валидные товары пишутся в writer канонично, по одному на строку; невалидные пропускаются.
// Ошибка возвращается, только если сам документ не является массивом.
func ValidateJSONArray(ctx context.Context, validator ports.ItemValidator, raw []byte, ow io.Writer) (JSONResult, error) {
	var res JSONResult

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return res, fmt.Errorf("invalid json: expected array of items: %w", err)
	}

	for _, elem := range elems {
		item, err := ValidateItemFromJSON(ctx, validator, elem)
		if err != nil {
			res.InvalidCount++
			continue
		}
		if err := writeLine(ow, item); err != nil {
			return res, err
		}
		res.ValidCount++
	}
	return res, nil
}

func writeLine(ow io.Writer, v any) error {
	canonical, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := ow.Write(append(canonical, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
