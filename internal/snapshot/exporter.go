package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
)

// Exporter — выгрузка всей таблицы каталога в статический снапшот при сборке.
type Exporter struct {
	store     ports.RecordStore
	validator ports.ItemValidator
	file      *File
	table     string
	log       ports.Logger
}

func NewExporter(store ports.RecordStore, validator ports.ItemValidator, file *File, table string, log ports.Logger) *Exporter {
	return &Exporter{store: store, validator: validator, file: file, table: table, log: log}
}

// Run — читает каталог у провайдера и пишет снапшот; возвращает число записанных товаров.
// Невалидные товары попадают в снапшот как есть, но логируются.
func (e *Exporter) Run(ctx context.Context) (int, error) {
	start := time.Now()
	e.log.Infof(ctx, "fetching catalog table=%s for build-time snapshot", e.table)

	records, err := e.store.GetRecords(ctx, e.table, nil)
	if err != nil {
		return 0, fmt.Errorf("fetch catalog: %w", err)
	}
	items, err := domain.ItemsFromRecords(records)
	if err != nil {
		return 0, fmt.Errorf("map catalog records: %w", err)
	}

	for idx := range items {
		if vErr := e.validator.Validate(ctx, &items[idx]); vErr != nil {
			e.log.Warnf(ctx, "snapshot item %d looks invalid: %v", idx, vErr)
		}
	}

	if err := e.file.Write(items); err != nil {
		return 0, err
	}
	e.log.Infof(ctx, "catalog snapshot written path=%s items=%d took=%s", e.file.Path, len(items), time.Since(start))
	return len(items), nil
}

// WriteEmpty — пустой снапшот для сборки без доступа к провайдеру.
func (e *Exporter) WriteEmpty(ctx context.Context) error {
	if err := e.file.Write(nil); err != nil {
		return err
	}
	e.log.Warnf(ctx, "provider credentials missing, empty catalog snapshot written path=%s", e.file.Path)
	return nil
}
