package model

import "github.com/shopspring/decimal"

type Badge string

const (
	BadgeDeal       Badge = "deal"
	BadgeNew        Badge = "new"
	BadgeBestseller Badge = "bestseller"
)

// 商品資料  啟動時載入一次，之後唯讀
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Image         string           `json:"image"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Category      string           `json:"category"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	Badge         Badge            `json:"badge,omitempty"`
}

// Discount 折扣百分比，沒有原價或原價不高於售價時回傳0
func (p Product) Discount() int {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
