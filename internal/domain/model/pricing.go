package model

import "github.com/shopspring/decimal"

// 訂單金額明細
type OrderSummary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingFee  decimal.Decimal `json:"shipping_fee"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	FreeShipping bool            `json:"free_shipping"`
	// 距離免運還差多少，已免運時為0
	RemainingForFreeShipping decimal.Decimal `json:"remaining_for_free_shipping"`
}
