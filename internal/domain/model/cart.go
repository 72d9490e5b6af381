package model

import (
	"github.com/shopspring/decimal"
)

// 購物車商品  名稱/圖片/價格為加入當下的快照
// 同一個購物車內 一個ProductID最多只會有一筆
type CartItem struct {
	ProductID     int              `json:"product_id"`
	Name          string           `json:"name"`
	Image         string           `json:"image"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Quantity      int              `json:"quantity"`
}

func NewCartItem(p Product, quantity int) CartItem {
	item := CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		Quantity:  quantity,
	}
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		item.OriginalPrice = &op
	}
	return item
}

// LineTotal price * quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// 購物車只屬於單一 session
// 依加入順序排列
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
}

func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Items: []CartItem{}}
}

// TotalItems 每次呼叫都重新計算
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice 每次呼叫都重新計算
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Find(productID int) (int, bool) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i, true
		}
	}
	return -1, false
}

// Snapshot 深拷貝商品列表，之後購物車再怎麼變動都不影響
func (c *Cart) Snapshot() []CartItem {
	return CopyCartItems(c.Items)
}

func CopyCartItems(items []CartItem) []CartItem {
	res := make([]CartItem, len(items))
	for i, item := range items {
		res[i] = item
		if item.OriginalPrice != nil {
			op := *item.OriginalPrice
			res[i].OriginalPrice = &op
		}
	}
	return res
}
