package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderFields — поля заказа в таблице провайдера.
type OrderFields struct {
	ID              string          `json:"id,omitempty"`
	ProductID       string          `json:"product_id"`
	ProductPrice    decimal.Decimal `json:"product_price"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	CustomerPincode int             `json:"customer_pincode"`
}

// Order — созданная запись заказа (id и createdTime назначает провайдер).
type Order struct {
	ID          string      `json:"id"`
	CreatedTime time.Time   `json:"createdTime"`
	Fields      OrderFields `json:"fields"`
}

// CheckoutForm — данные формы оформления заказа в том виде, как их ввёл покупатель.
type CheckoutForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
}
