package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/pkg/validate"
	"github.com/shopspring/decimal"
)

func validForm() *domain.CheckoutForm {
	return &domain.CheckoutForm{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "+91 98765 43210",
		Address: "12 MG Road, Bengaluru",
		Pincode: "560001",
	}
}

func TestCheckoutValidator_Validate(t *testing.T) {
	v := validate.NewCheckoutValidator()
	ctx := context.Background()

	if err := v.Validate(ctx, validForm()); err != nil {
		t.Fatalf("expected valid form, got: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(f *domain.CheckoutForm)
		msg    string
	}{
		{"empty name", func(f *domain.CheckoutForm) { f.Name = " " }, "name обязателен"},
		{"empty phone", func(f *domain.CheckoutForm) { f.Phone = "" }, "phone обязателен"},
		{"empty address", func(f *domain.CheckoutForm) { f.Address = "" }, "address обязателен"},
		{"short pincode", func(f *domain.CheckoutForm) { f.Pincode = "1234" }, "5-6 цифр"},
		{"long pincode", func(f *domain.CheckoutForm) { f.Pincode = "1234567" }, "5-6 цифр"},
		{"letters in pincode", func(f *domain.CheckoutForm) { f.Pincode = "12a45" }, "только цифры"},
		{"email without at", func(f *domain.CheckoutForm) { f.Email = "asha.example.com" }, "email некорректен"},
		{"email unparsable", func(f *domain.CheckoutForm) { f.Email = "a@b@c" }, "email некорректен"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(f)
			err := v.Validate(ctx, f)
			if !errors.Is(err, validate.ErrInvalidCheckout) {
				t.Fatalf("expected ErrInvalidCheckout, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("expected message to contain %q, got %q", tc.msg, err.Error())
			}
		})
	}

	if err := v.Validate(ctx, nil); !errors.Is(err, validate.ErrInvalidCheckout) {
		t.Fatalf("nil form must be invalid, got %v", err)
	}
}

func TestParsePincode(t *testing.T) {
	if n, err := validate.ParsePincode("01234"); err != nil || n != 1234 {
		t.Fatalf("ParsePincode(01234): n=%d err=%v", n, err)
	}
	if _, err := validate.ParsePincode("-1234"); err == nil {
		t.Fatalf("sign must be rejected")
	}
}

func TestItemValidator_Validate(t *testing.T) {
	v := validate.NewItemValidator()
	ctx := context.Background()
	pre := decimal.NewFromInt(10)
	low := decimal.NewFromInt(3)

	cases := []struct {
		name string
		item *domain.Item
		ok   bool
	}{
		{"valid", &domain.Item{ID: "1", Title: "Ink", Price: decimal.NewFromInt(5)}, true},
		{"valid discount", &domain.Item{ID: "1", Title: "Ink", Price: decimal.NewFromInt(5), PreDiscountPrice: &pre}, true},
		{"nil", nil, false},
		{"no id", &domain.Item{Title: "Ink"}, false},
		{"no title", &domain.Item{ID: "1"}, false},
		{"negative price", &domain.Item{ID: "1", Title: "Ink", Price: decimal.NewFromInt(-1)}, false},
		{"pre below price", &domain.Item{ID: "1", Title: "Ink", Price: decimal.NewFromInt(5), PreDiscountPrice: &low}, false},
	}
	for _, tc := range cases {
		err := v.Validate(ctx, tc.item)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, validate.ErrInvalidItem) {
			t.Fatalf("%s: expected ErrInvalidItem, got %v", tc.name, err)
		}
	}
}

func TestParseInvalidationEvent(t *testing.T) {
	ev, err := validate.ParseInvalidationEvent([]byte(`{"type":"item","id":"42"}`))
	if err != nil || ev.Type != domain.InvalidateItem || ev.ItemID != "42" {
		t.Fatalf("unexpected result ev=%+v err=%v", ev, err)
	}
	if _, err := validate.ParseInvalidationEvent([]byte(`{"type":"catalog"}`)); err != nil {
		t.Fatalf("catalog event must be valid: %v", err)
	}

	bad := []string{
		`{"type":"item"}`,
		`{"type":"price"}`,
		`{"type":"catalog","extra":1}`,
		`{"type":"catalog"}{}`,
		`not json`,
	}
	for _, raw := range bad {
		if _, err := validate.ParseInvalidationEvent([]byte(raw)); !errors.Is(err, validate.ErrInvalidEvent) {
			t.Fatalf("%s: expected ErrInvalidEvent, got %v", raw, err)
		}
	}
}
