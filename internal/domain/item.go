package domain

import "github.com/shopspring/decimal"

// AvailabilityInStock — значение availability, по которому фильтруется «в наличии».
const AvailabilityInStock = "in stock"

// Item — товар каталога в том виде, в каком его хранит провайдер (имена колонок = json-теги).
type Item struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	LongDescription  string           `json:"long_description,omitempty"`
	Availability     string           `json:"availability"`
	Condition        string           `json:"condition"`
	Price            decimal.Decimal  `json:"price"`
	PreDiscountPrice *decimal.Decimal `json:"pre_discount_price,omitempty"`
	Link             string           `json:"link"`
	ImageLink        string           `json:"image_link"`
	Image2Link       string           `json:"image_2_link,omitempty"`
	Image3Link       string           `json:"image_3_link,omitempty"`
	Brand            string           `json:"brand"`
	Category         string           `json:"category"`
	Type             string           `json:"type,omitempty"`
}

// InStock — товар доступен к заказу.
func (i *Item) InStock() bool { return i.Availability == AvailabilityInStock }

// HasDiscount — цена до скидки задана и строго больше текущей.
func (i *Item) HasDiscount() bool {
	return i.PreDiscountPrice != nil && i.PreDiscountPrice.GreaterThan(i.Price)
}

// Savings — «вы сэкономили»; ноль, если скидки нет.
func (i *Item) Savings() decimal.Decimal {
	if !i.HasDiscount() {
		return decimal.Zero
	}
	return i.PreDiscountPrice.Sub(i.Price)
}

// DiscountPercent — процент скидки, округлённый до целого.
func (i *Item) DiscountPercent() int {
	if !i.HasDiscount() || i.PreDiscountPrice.IsZero() {
		return 0
	}
	pct := i.Savings().Div(*i.PreDiscountPrice).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// Images — основное изображение и непустые дополнительные, в порядке отображения.
func (i *Item) Images() []string {
	out := make([]string, 0, 3)
	for _, link := range []string{i.ImageLink, i.Image2Link, i.Image3Link} {
		if link != "" {
			out = append(out, link)
		}
	}
	return out
}
