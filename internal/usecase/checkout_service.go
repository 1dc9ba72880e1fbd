package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/validate"
)

// ErrProductNotFound — заказ оформляется на товар, которого нет в каталоге.
var ErrProductNotFound = errors.New("product not found")

var _ ports.CheckoutService = (*CheckoutService)(nil)

// CheckoutService — оформление заказа из формы: проверка, цена товара на момент заказа, вставка.
type CheckoutService struct {
	catalog   ports.CatalogReadService
	orders    *OrderService
	validator ports.CheckoutValidator
	log       ports.Logger
}

func NewCheckoutService(
	catalog ports.CatalogReadService,
	orders *OrderService,
	validator ports.CheckoutValidator,
	log ports.Logger,
) *CheckoutService {
	return &CheckoutService{catalog: catalog, orders: orders, validator: validator, log: log}
}

// PlaceOrder — ошибки: validate.ErrInvalidCheckout, ErrProductNotFound или ошибка провайдера как есть.
func (s *CheckoutService) PlaceOrder(ctx context.Context, productID string, form *domain.CheckoutForm) (*domain.Order, error) {
	if err := s.validator.Validate(ctx, form); err != nil {
		s.log.Warnf(ctx, "checkout rejected product_id=%s err=%v", productID, err)
		return nil, err
	}
	pincode, err := validate.ParsePincode(form.Pincode)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return s.orders.Create(ctx, &domain.OrderFields{
		ProductID:       product.ID,
		ProductPrice:    product.Price,
		CustomerName:    strings.TrimSpace(form.Name),
		CustomerEmail:   strings.TrimSpace(form.Email),
		CustomerPhone:   strings.TrimSpace(form.Phone),
		CustomerAddress: strings.TrimSpace(form.Address),
		CustomerPincode: pincode,
	})
}
