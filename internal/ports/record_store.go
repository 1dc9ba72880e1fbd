package ports

import (
	"context"

	"github.com/Gunvolt24/wildink/internal/domain"
)

// RecordStore — удалённый табличный провайдер (источник истины).
type RecordStore interface {
	// GetRecords — все записи таблицы (все страницы), опционально с фильтром равенства.
	GetRecords(ctx context.Context, table string, filter *domain.Filter) ([]domain.Record, error)
	// InsertRecord — создать одну запись и вернуть её в виде, назначенном провайдером.
	InsertRecord(ctx context.Context, table string, fields any) (*domain.Record, error)
}
