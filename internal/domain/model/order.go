package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// 訂單狀態固定順序，只能往前
var OrderStatusSequence = []OrderStatus{
	OrderStatusProcessing,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// Index 在狀態序列中的位置，未知狀態回傳-1
func (s OrderStatus) Index() int {
	for i, status := range OrderStatusSequence {
		if status == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) IsValid() bool {
	return s.Index() >= 0
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

func (s OrderStatus) String() string {
	return string(s)
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type StatusRecord struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// 訂單聚合
// 訂單建立後 Items 與金額不會變動
// 只有 Status 會往前推進
type Order struct {
	OrderID           string          `json:"id"`
	SessionID         string          `json:"-"`
	Items             []CartItem      `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ShippingFee       decimal.Decimal `json:"shipping_fee"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	Status            OrderStatus     `json:"status"`
	StatusHistory     []StatusRecord  `json:"status_history"`
	CreatedAt         time.Time       `json:"created_at"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	ShippingAddress   ShippingAddress `json:"shipping_address"`
	PaymentMethod     string          `json:"payment_method"`
}

// Clone 深拷貝，讀取端拿到的永遠是快照
func (o *Order) Clone() *Order {
	c := *o
	c.Items = CopyCartItems(o.Items)
	c.StatusHistory = append([]StatusRecord(nil), o.StatusHistory...)
	return &c
}
