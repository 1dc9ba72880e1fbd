package domain_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/shopspring/decimal"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestItem_Discount(t *testing.T) {
	item := domain.Item{ID: "1", Price: decimal.RequireFromString("750"), PreDiscountPrice: price("1000")}

	if !item.HasDiscount() {
		t.Fatalf("expected discount")
	}
	if got := item.DiscountPercent(); got != 25 {
		t.Fatalf("DiscountPercent: got=%d want=25", got)
	}
	if got := item.Savings().String(); got != "250" {
		t.Fatalf("Savings: got=%s want=250", got)
	}
}

func TestItem_DiscountPercent_Rounds(t *testing.T) {
	item := domain.Item{Price: decimal.RequireFromString("2"), PreDiscountPrice: price("3")}
	// (3-2)/3*100 = 33.33…
	if got := item.DiscountPercent(); got != 33 {
		t.Fatalf("DiscountPercent: got=%d want=33", got)
	}
}

func TestItem_NoDiscount_WhenPreNotGreater(t *testing.T) {
	cases := []domain.Item{
		{Price: decimal.RequireFromString("10")},
		{Price: decimal.RequireFromString("10"), PreDiscountPrice: price("10")},
		{Price: decimal.RequireFromString("10"), PreDiscountPrice: price("5")},
	}
	for i := range cases {
		if cases[i].HasDiscount() {
			t.Fatalf("case %d: unexpected discount", i)
		}
		if !cases[i].Savings().IsZero() || cases[i].DiscountPercent() != 0 {
			t.Fatalf("case %d: expected zero savings and percent", i)
		}
	}
}

func TestItem_InStockAndImages(t *testing.T) {
	item := domain.Item{Availability: "in stock", ImageLink: "a.jpg", Image3Link: "c.jpg"}
	if !item.InStock() {
		t.Fatalf("expected in stock")
	}
	if got := item.Images(); len(got) != 2 || got[0] != "a.jpg" || got[1] != "c.jpg" {
		t.Fatalf("Images: got=%v", got)
	}
	item.Availability = "out of stock"
	if item.InStock() {
		t.Fatalf("expected out of stock")
	}
}

func TestItem_JSON_PricesAsNumbers(t *testing.T) {
	item := domain.Item{ID: "1", Price: decimal.RequireFromString("19.99"), PreDiscountPrice: price("25")}
	raw, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(raw)
	if !strings.Contains(s, `"price":19.99`) || !strings.Contains(s, `"pre_discount_price":25`) {
		t.Fatalf("prices must be numbers: %s", s)
	}
	if strings.Contains(s, "image_2_link") {
		t.Fatalf("empty optional fields must be omitted: %s", s)
	}
}

func TestItemsFromRecords(t *testing.T) {
	records := []domain.Record{
		{ID: "rec1", CreatedTime: time.Now(), Fields: json.RawMessage(`{"id":"1","title":"Ink","price":12.5,"category":"ink"}`)},
		{ID: "rec2", Fields: json.RawMessage(`{"id":"2","title":"Pen","price":3}`)},
	}
	items, err := domain.ItemsFromRecords(records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 || items[0].ID != "1" || items[0].Category != "ink" || items[1].Price.String() != "3" {
		t.Fatalf("unexpected items: %+v", items)
	}

	_, err = domain.ItemsFromRecords([]domain.Record{{ID: "bad", Fields: json.RawMessage(`{"price":"x"}`)}})
	if err == nil || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("expected decode error mentioning record id, got %v", err)
	}
}

func TestOrderFromRecord(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rec := domain.Record{
		ID:          "recORD",
		CreatedTime: created,
		Fields:      json.RawMessage(`{"product_id":"1","product_price":100,"customer_name":"A","customer_pincode":110001}`),
	}
	order, err := domain.OrderFromRecord(&rec)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if order.ID != "recORD" || !order.CreatedTime.Equal(created) || order.Fields.CustomerPincode != 110001 {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestFieldEquals(t *testing.T) {
	f := domain.FieldEquals("category", "ink")
	if f.Field != "category" || f.Value != "ink" {
		t.Fatalf("unexpected filter: %+v", f)
	}
}
