package usecase

import (
	"context"
	"strings"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/metrics"
)

// DefaultOrdersTable — таблица заказов у провайдера.
const DefaultOrdersTable = "orders"

const fieldCustomerEmail = "customer_email"

var _ ports.OrderReadService = (*OrderService)(nil)

// OrderService — заказы у провайдера. Сам ничего не проверяет и не кэширует.
type OrderService struct {
	store ports.RecordStore
	log   ports.Logger
	table string
}

// NewOrderService — DI-конструктор; table == "" означает "orders".
func NewOrderService(store ports.RecordStore, log ports.Logger, table string) *OrderService {
	if table == "" {
		table = DefaultOrdersTable
	}
	return &OrderService{store: store, log: log, table: table}
}

// Create — вставить заказ как есть. Ключа идемпотентности нет: повтор создаст дубликат.
func (s *OrderService) Create(ctx context.Context, fields *domain.OrderFields) (*domain.Order, error) {
	rec, err := s.store.InsertRecord(ctx, s.table, fields)
	if err != nil {
		metrics.OrdersSubmitted.WithLabelValues("error").Inc()
		s.log.Errorf(ctx, "order insert failed product_id=%s err=%v", fields.ProductID, err)
		return nil, err
	}
	order, err := domain.OrderFromRecord(rec)
	if err != nil {
		metrics.OrdersSubmitted.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.OrdersSubmitted.WithLabelValues("ok").Inc()
	s.log.Infof(ctx, "order created id=%s product_id=%s", order.ID, fields.ProductID)
	return order, nil
}

// GetOrder — заказ по полю id; (nil, nil), если не найден.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := s.list(ctx, domain.FieldEquals(fieldID, id))
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// ListOrders — все заказы.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, nil)
}

// OrdersByCustomerEmail — заказы покупателя по email.
func (s *OrderService) OrdersByCustomerEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.list(ctx, domain.FieldEquals(fieldCustomerEmail, strings.TrimSpace(email)))
}

func (s *OrderService) list(ctx context.Context, filter *domain.Filter) ([]domain.Order, error) {
	records, err := s.store.GetRecords(ctx, s.table, filter)
	if err != nil {
		s.log.Errorf(ctx, "provider fetch failed table=%s filter=%v err=%v", s.table, filter, err)
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for idx := range records {
		order, err := domain.OrderFromRecord(&records[idx])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}
