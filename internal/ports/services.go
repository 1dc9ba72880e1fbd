package ports

import (
	"context"

	"github.com/Gunvolt24/wildink/internal/domain"
)

// CatalogReadService — чтение каталога для транспорта.
type CatalogReadService interface {
	GetAll(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	GetByCategory(ctx context.Context, category string) ([]domain.Item, error)
	GetInStock(ctx context.Context) ([]domain.Item, error)
	Categories(ctx context.Context) ([]string, error)
}

// OrderReadService — чтение заказов.
type OrderReadService interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	OrdersByCustomerEmail(ctx context.Context, email string) ([]domain.Order, error)
}

// CheckoutService — оформление заказа из формы.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, productID string, form *domain.CheckoutForm) (*domain.Order, error)
}

// CheckoutValidator — проверка формы оформления заказа.
type CheckoutValidator interface {
	Validate(ctx context.Context, form *domain.CheckoutForm) error
}

// ItemValidator — проверка товара каталога.
type ItemValidator interface {
	Validate(ctx context.Context, item *domain.Item) error
}
