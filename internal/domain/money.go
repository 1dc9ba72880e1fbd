package domain

import "github.com/shopspring/decimal"

func init() {
	// Провайдер ожидает числовые колонки числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}
