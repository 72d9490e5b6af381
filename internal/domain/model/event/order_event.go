package model

import (
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	BaseEvent
	OrderID           string                `json:"order_id"`
	Items             []model.CartItem      `json:"items"`
	Total             decimal.Decimal       `json:"total"`
	ShippingAddress   model.ShippingAddress `json:"shipping_address"`
	EstimatedDelivery time.Time             `json:"estimated_delivery"`
	ToState           model.OrderStatus     `json:"to_state"`
}

func NewOrderCreatedEvent(order *model.Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseEvent:         *NewBaseEvent(order.OrderID, OrderCreatedEventName, order.CreatedAt),
		OrderID:           order.OrderID,
		Items:             model.CopyCartItems(order.Items),
		Total:             order.Total,
		ShippingAddress:   order.ShippingAddress,
		EstimatedDelivery: order.EstimatedDelivery,
		ToState:           order.Status,
	}
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   string            `json:"order_id"`
	FromState model.OrderStatus `json:"from_state"`
	ToState   model.OrderStatus `json:"to_state"`
}

func NewOrderStatusChangedEvent(orderID string, from, to model.OrderStatus, at time.Time) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent: *NewBaseEvent(orderID, OrderStatusChangedEventName, at),
		OrderID:   orderID,
		FromState: from,
		ToState:   to,
	}
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}
