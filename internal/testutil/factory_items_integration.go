//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/shopspring/decimal"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидной позиции каталога
func MakeItem(opts ...func(*domain.Item)) domain.Item {
	it := domain.Item{
		ID:           "rec" + UniqSuffix(),
		Title:        "Sticker " + UniqSuffix(),
		Description:  "Vinyl sticker",
		Availability: domain.AvailabilityInStock,
		Condition:    "new",
		Price:        decimal.RequireFromString("149.00"),
		Link:         "https://wildink.example/p/" + UniqSuffix(),
		ImageLink:    "https://cdn.wildink.example/" + UniqSuffix() + ".png",
		Brand:        "wildink",
		Category:     "stickers",
		Type:         "sticker",
	}

	for _, fn := range opts {
		fn(&it)
	}
	return it
}

func WithCategory(category string) func(*domain.Item) {
	return func(it *domain.Item) { it.Category = category }
}

func WithItemID(id string) func(*domain.Item) {
	return func(it *domain.Item) { it.ID = id }
}

func MakeItems(n int, opts ...func(*domain.Item)) []domain.Item {
	out := make([]domain.Item, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, MakeItem(opts...))
	}
	return out
}
