package dto

import (
	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/shopspring/decimal"
)

type AddCartItemDTO struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"` //未帶或小於1時視為1
}

type UpdateCartItemDTO struct {
	Quantity int `json:"quantity"` //小於等於0時移除
}

// CartDTO 購物車內容與金額明細
type CartDTO struct {
	Items      []model.CartItem   `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Summary    model.OrderSummary `json:"summary"`
}

func NewCartDTO(cart *model.Cart, summary model.OrderSummary) CartDTO {
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return CartDTO{
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
		Summary:    summary,
	}
}
