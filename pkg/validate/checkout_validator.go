package validate

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
)

var _ ports.CheckoutValidator = (*CheckoutValidator)(nil)

// ErrInvalidCheckout — базовая ошибка валидации формы оформления заказа.
var ErrInvalidCheckout = errors.New("checkout form validation failed")

// CheckoutValidator — проверка формы оформления заказа.
type CheckoutValidator struct{}

func NewCheckoutValidator() *CheckoutValidator { return &CheckoutValidator{} }

// Validate — все поля обязательны; email с «@» и разбираемый; pincode из 5–6 цифр.
func (v *CheckoutValidator) Validate(_ context.Context, form *domain.CheckoutForm) error {
	if form == nil {
		return fmt.Errorf("%w: форма не может быть nil", ErrInvalidCheckout)
	}
	required := []struct {
		name, value string
	}{
		{"name", form.Name},
		{"email", form.Email},
		{"phone", form.Phone},
		{"address", form.Address},
		{"pincode", form.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s обязателен", ErrInvalidCheckout, f.name)
		}
	}

	if _, err := ParsePincode(form.Pincode); err != nil {
		return err
	}
	if !strings.Contains(form.Email, "@") {
		return fmt.Errorf("%w: email некорректен", ErrInvalidCheckout)
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		return fmt.Errorf("%w: email некорректен", ErrInvalidCheckout)
	}
	return nil
}

// ParsePincode — почтовый индекс из 5–6 цифр в числовом виде.
func ParsePincode(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 5 || len(raw) > 6 {
		return 0, fmt.Errorf("%w: pincode должен содержать 5-6 цифр", ErrInvalidCheckout)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: pincode должен содержать только цифры", ErrInvalidCheckout)
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: pincode некорректен", ErrInvalidCheckout)
	}
	return n, nil
}
