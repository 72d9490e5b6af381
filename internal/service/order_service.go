package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	evt_model "github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model/event"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/producer"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/clock"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/rs/zerolog/log"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrEmptyOrder              = errors.New("order has no items")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrOrderServiceClosed      = errors.New("order service is closed")
)

const (
	maxOrderIDAttempts = 5
	eventBufferSize    = 256
	eventSendTimeout   = 5 * time.Second
)

// 建立訂單後，從建立時間起算多久推進到該狀態
type StatusStep struct {
	Status model.OrderStatus
	After  time.Duration
}

type OrderServiceConfig struct {
	DeliveryEstimate time.Duration
	Schedule         []StatusStep
}

func DefaultOrderServiceConfig() OrderServiceConfig {
	return OrderServiceConfig{
		DeliveryEstimate: 5 * 24 * time.Hour,
		Schedule: []StatusStep{
			{Status: model.OrderStatusConfirmed, After: 3 * time.Second},
			{Status: model.OrderStatusShipped, After: 8 * time.Second},
			{Status: model.OrderStatusOutForDelivery, After: 15 * time.Second},
			{Status: model.OrderStatusDelivered, After: 25 * time.Second},
		},
	}
}

type CreateOrderParams struct {
	SessionID       string
	Items           []model.CartItem
	Summary         model.OrderSummary
	ShippingAddress model.ShippingAddress
	// 已遮罩的付款資訊
	PaymentMethod string
}

type IOrderService interface {
	// CreateOrder 建立訂單並排程狀態推進
	//
	// 錯誤:
	//   - ErrEmptyOrder: 沒有商品
	//   - ErrOrderServiceClosed: 已關閉
	CreateOrder(ctx context.Context, params CreateOrderParams) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	// GetSessionOrder 其他 session 的訂單視為不存在
	GetSessionOrder(ctx context.Context, sessionID string, orderID string) (*model.Order, error)
	// ListOrders 新的在前
	ListOrders(ctx context.Context, sessionID string) ([]*model.Order, error)
	// UpdateStatus 只能往前，可以跳過中間狀態
	//
	// 錯誤:
	//   - ErrOrderNotFound: 訂單不存在
	//   - ErrInvalidStatusTransition: 未知狀態或往回
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)
	// Close 停止尚未觸發的狀態排程，送完剩下的事件
	Close() error
}

/*
訂單狀態模擬
每張訂單建立後排四個獨立的 timer，各自只觸發一次
離開追蹤頁面不會取消 timer，只有 Close 會
*/
type OrderService struct {
	orderRepo repository.IOrderRepository
	producer  producer.IOrderEventProducer
	clock     clock.Clock
	cfg       OrderServiceConfig

	// 讀取-檢查-寫回 狀態時持有
	statusMu sync.Mutex

	// 保護 closed, timers, events
	lifeMu      sync.Mutex
	closed      bool
	timers      map[uint64]clock.Timer
	nextTimerID uint64
	events      chan evt_model.Event
	eventLoopWg sync.WaitGroup
}

var _ IOrderService = (*OrderService)(nil)

func NewOrderService(orderRepo repository.IOrderRepository, eventProducer producer.IOrderEventProducer, clk clock.Clock, cfg OrderServiceConfig) *OrderService {
	if util.IsNil(orderRepo) {
		panic("NewOrderService: orderRepo is nil")
	}
	if util.IsNil(eventProducer) {
		panic("NewOrderService: eventProducer is nil")
	}
	if util.IsNil(clk) {
		panic("NewOrderService: clock is nil")
	}

	s := &OrderService{
		orderRepo: orderRepo,
		producer:  eventProducer,
		clock:     clk,
		cfg:       cfg,
		timers:    make(map[uint64]clock.Timer),
		events:    make(chan evt_model.Event, eventBufferSize),
	}
	s.eventLoopWg.Add(1)
	go s.eventLoop()
	return s
}

func (s *OrderService) CreateOrder(ctx context.Context, params CreateOrderParams) (*model.Order, error) {
	if len(params.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if s.isClosed() {
		return nil, ErrOrderServiceClosed
	}

	now := s.clock.Now()
	order := &model.Order{
		SessionID:         params.SessionID,
		Items:             model.CopyCartItems(params.Items),
		Subtotal:          params.Summary.Subtotal,
		ShippingFee:       params.Summary.ShippingFee,
		Tax:               params.Summary.Tax,
		Total:             params.Summary.Total,
		Status:            model.OrderStatusProcessing,
		StatusHistory:     []model.StatusRecord{{Status: model.OrderStatusProcessing, Timestamp: now}},
		CreatedAt:         now,
		EstimatedDelivery: now.Add(s.cfg.DeliveryEstimate),
		ShippingAddress:   params.ShippingAddress,
		PaymentMethod:     params.PaymentMethod,
	}

	var err error
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		order.OrderID = util.GenerateOrderID(now)
		err = s.orderRepo.Create(ctx, order)
		if err == nil || !errors.Is(err, repository.ErrAlreadyExists) {
			break
		}
		log.Warn().Str("order_id", order.OrderID).Msg("order id collision, regenerate")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publish(evt_model.NewOrderCreatedEvent(order))
	for _, step := range s.cfg.Schedule {
		s.scheduleStatus(order.OrderID, step)
	}

	log.Info().
		Str("order_id", order.OrderID).
		Str("session_id", order.SessionID).
		Str("total", order.Total.StringFixed(2)).
		Msg("order created")
	return order.Clone(), nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, translateOrderErr(err, orderID)
	}
	return order, nil
}

func (s *OrderService) GetSessionOrder(ctx context.Context, sessionID string, orderID string) (*model.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SessionID != sessionID {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, sessionID string) ([]*model.Order, error) {
	return s.orderRepo.ListBySession(ctx, sessionID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, status)
	}

	s.statusMu.Lock()
	order, err := s.orderRepo.Get(ctx, orderID)
	if err != nil {
		s.statusMu.Unlock()
		return nil, translateOrderErr(err, orderID)
	}

	from := order.Status
	if status == from {
		s.statusMu.Unlock()
		return order, nil
	}
	if status.Index() < from.Index() {
		s.statusMu.Unlock()
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, status)
	}

	now := s.clock.Now()
	order.Status = status
	order.StatusHistory = append(order.StatusHistory, model.StatusRecord{Status: status, Timestamp: now})
	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.statusMu.Unlock()
		return nil, translateOrderErr(err, orderID)
	}
	s.statusMu.Unlock()

	s.publish(evt_model.NewOrderStatusChangedEvent(orderID, from, status, now))
	log.Debug().Str("order_id", orderID).Str("from", from.String()).Str("to", status.String()).Msg("order status changed")
	return order, nil
}

func (s *OrderService) Close() error {
	s.lifeMu.Lock()
	if s.closed {
		s.lifeMu.Unlock()
		return nil
	}
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	close(s.events)
	s.lifeMu.Unlock()

	s.eventLoopWg.Wait()
	return nil
}

// PendingTransitions 尚未觸發的狀態排程數
func (s *OrderService) PendingTransitions() int {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	return len(s.timers)
}

func (s *OrderService) isClosed() bool {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	return s.closed
}

// 持有 lifeMu 時註冊 timer，callback 先等註冊完成才移除自己
func (s *OrderService) scheduleStatus(orderID string, step StatusStep) {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.closed {
		return
	}

	id := s.nextTimerID
	s.nextTimerID++
	s.timers[id] = s.clock.AfterFunc(step.After, func() {
		s.lifeMu.Lock()
		delete(s.timers, id)
		s.lifeMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), eventSendTimeout)
		defer cancel()
		_, err := s.UpdateStatus(ctx, orderID, step.Status)
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidStatusTransition):
			// 已經被推進到更後面的狀態
			log.Debug().Str("order_id", orderID).Str("status", step.Status.String()).Msg("skip stale status transition")
		case errors.Is(err, ErrOrderNotFound):
		default:
			log.Error().Err(err).Str("order_id", orderID).Str("status", step.Status.String()).Msg("scheduled status transition failed")
		}
	})
}

// 事件發送失敗只寫 log，不影響訂單
func (s *OrderService) publish(evt evt_model.Event) {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- evt:
	default:
		log.Warn().Str("event_type", string(evt.Type())).Str("aggregate_id", evt.GetAggregateID()).Msg("order event buffer full, drop event")
	}
}

func (s *OrderService) eventLoop() {
	defer s.eventLoopWg.Done()
	for evt := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), eventSendTimeout)
		if err := s.producer.Produce(ctx, evt); err != nil {
			log.Error().Err(err).Str("event_type", string(evt.Type())).Str("aggregate_id", evt.GetAggregateID()).Msg("failed to produce order event")
		}
		cancel()
	}
}

func translateOrderErr(err error, orderID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return err
}
