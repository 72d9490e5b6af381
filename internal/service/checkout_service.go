package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/clock"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/rs/zerolog/log"
)

var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCheckoutNotStarted  = errors.New("checkout not started")
	ErrCheckoutProcessing  = errors.New("checkout is processing")
	ErrCheckoutCompleted   = errors.New("checkout already completed")
	ErrInvalidCheckoutStep = errors.New("invalid checkout step")
	ErrCheckoutClosed      = errors.New("checkout service is closed")
)

// ValidationError 必填欄位為空，流程停在原本的步驟
type ValidationError struct {
	Step   model.CheckoutStep
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Step, strings.Join(e.Fields, ", "))
}

/*
結帳流程  每個 session 一個
shipping -> payment -> processing -> success
只有 payment 可以回到 shipping
*/
type ICheckoutService interface {
	// Begin 開始新的結帳流程，已在 shipping/payment 時維持原狀
	Begin(ctx context.Context, sessionID string) (*model.CheckoutFlow, error)
	GetFlow(ctx context.Context, sessionID string) (*model.CheckoutFlow, error)
	SubmitShipping(ctx context.Context, sessionID string, info model.ShippingInfo) (*model.CheckoutFlow, error)
	// SubmitPayment 卡號只留末四碼，送出後進入 processing
	SubmitPayment(ctx context.Context, sessionID string, info model.PaymentInfo) (*model.CheckoutFlow, error)
	Back(ctx context.Context, sessionID string) (*model.CheckoutFlow, error)
	Close() error
}

type checkoutFlow struct {
	step     model.CheckoutStep
	shipping *model.ShippingInfo
	payment  string
	items    []model.CartItem
	summary  *model.OrderSummary
	orderID  string
	timer    clock.Timer
}

func (f *checkoutFlow) view(sessionID string) *model.CheckoutFlow {
	res := &model.CheckoutFlow{
		SessionID:     sessionID,
		Step:          f.step,
		PaymentMethod: f.payment,
		OrderID:       f.orderID,
	}
	if f.shipping != nil {
		s := *f.shipping
		res.Shipping = &s
	}
	if f.summary != nil {
		s := *f.summary
		res.Summary = &s
	}
	return res
}

type CheckoutService struct {
	cartService     ICartService
	orderService    IOrderService
	clock           clock.Clock
	processingDelay time.Duration

	mu     sync.Mutex
	flows  map[string]*checkoutFlow
	closed bool
}

var _ ICheckoutService = (*CheckoutService)(nil)

func NewCheckoutService(cartService ICartService, orderService IOrderService, clk clock.Clock, processingDelay time.Duration) *CheckoutService {
	if util.IsNil(cartService) {
		panic("NewCheckoutService: cartService is nil")
	}
	if util.IsNil(orderService) {
		panic("NewCheckoutService: orderService is nil")
	}
	if util.IsNil(clk) {
		panic("NewCheckoutService: clock is nil")
	}
	return &CheckoutService{
		cartService:     cartService,
		orderService:    orderService,
		clock:           clk,
		processingDelay: processingDelay,
		flows:           make(map[string]*checkoutFlow),
	}
}

func (s *CheckoutService) Begin(ctx context.Context, sessionID string) (*model.CheckoutFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[sessionID]
	if ok && flow.step == model.CheckoutStepProcessing {
		return nil, ErrCheckoutProcessing
	}
	if ok && !flow.step.IsTerminal() {
		if err := s.ensureCart(ctx, sessionID); err != nil {
			return nil, err
		}
		return flow.view(sessionID), nil
	}

	if err := s.ensureCart(ctx, sessionID); err != nil {
		return nil, err
	}
	flow = &checkoutFlow{step: model.CheckoutStepShipping}
	s.flows[sessionID] = flow
	return flow.view(sessionID), nil
}

func (s *CheckoutService) GetFlow(ctx context.Context, sessionID string) (*model.CheckoutFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[sessionID]
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	if !flow.step.IsTerminal() && flow.step != model.CheckoutStepProcessing {
		if err := s.ensureCart(ctx, sessionID); err != nil {
			return nil, err
		}
	}
	return flow.view(sessionID), nil
}

func (s *CheckoutService) SubmitShipping(ctx context.Context, sessionID string, info model.ShippingInfo) (*model.CheckoutFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.activeFlow(ctx, sessionID, model.CheckoutStepShipping)
	if err != nil {
		return nil, err
	}
	if missing := info.MissingFields(); len(missing) > 0 {
		return nil, &ValidationError{Step: model.CheckoutStepShipping, Fields: missing}
	}

	flow.shipping = &info
	flow.step = model.CheckoutStepPayment
	return flow.view(sessionID), nil
}

func (s *CheckoutService) SubmitPayment(ctx context.Context, sessionID string, info model.PaymentInfo) (*model.CheckoutFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.activeFlow(ctx, sessionID, model.CheckoutStepPayment)
	if err != nil {
		return nil, err
	}
	if missing := info.MissingFields(); len(missing) > 0 {
		return nil, &ValidationError{Step: model.CheckoutStepPayment, Fields: missing}
	}
	if s.closed {
		return nil, ErrCheckoutClosed
	}

	cart, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := s.cartService.Summary(cart)

	flow.payment = info.MaskedCard()
	flow.items = cart.Snapshot()
	flow.summary = &summary
	flow.step = model.CheckoutStepProcessing
	flow.timer = s.clock.AfterFunc(s.processingDelay, func() {
		s.completeFlow(sessionID, flow)
	})

	log.Info().Str("session_id", sessionID).Str("total", summary.Total.StringFixed(2)).Msg("checkout processing")
	return flow.view(sessionID), nil
}

func (s *CheckoutService) Back(ctx context.Context, sessionID string) (*model.CheckoutFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.activeFlow(ctx, sessionID, model.CheckoutStepPayment)
	if err != nil {
		return nil, err
	}
	flow.step = model.CheckoutStepShipping
	return flow.view(sessionID), nil
}

// Close 停止 processing 中的 timer
func (s *CheckoutService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for _, flow := range s.flows {
		if flow.timer != nil {
			flow.timer.Stop()
			flow.timer = nil
		}
	}
	return nil
}

// 呼叫前需持有 mu
// 檢查流程存在且在預期步驟，購物車為空時丟棄流程
func (s *CheckoutService) activeFlow(ctx context.Context, sessionID string, expected model.CheckoutStep) (*checkoutFlow, error) {
	flow, ok := s.flows[sessionID]
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	switch flow.step {
	case model.CheckoutStepProcessing:
		return nil, ErrCheckoutProcessing
	case model.CheckoutStepSuccess:
		return nil, ErrCheckoutCompleted
	}
	if err := s.ensureCart(ctx, sessionID); err != nil {
		return nil, err
	}
	if flow.step != expected {
		return nil, fmt.Errorf("%w: at %s, expected %s", ErrInvalidCheckoutStep, flow.step, expected)
	}
	return flow, nil
}

// 呼叫前需持有 mu
func (s *CheckoutService) ensureCart(ctx context.Context, sessionID string) error {
	cart, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		delete(s.flows, sessionID)
		return ErrCartEmpty
	}
	return nil
}

/*
processing 延遲結束
建立訂單 -> 清空購物車 -> 記錄訂單編號
flow 已經被替換或不在 processing 時不做事
*/
func (s *CheckoutService) completeFlow(sessionID string, flow *checkoutFlow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flows[sessionID] != flow || flow.step != model.CheckoutStepProcessing {
		return
	}
	flow.timer = nil

	ctx, cancel := context.WithTimeout(context.Background(), eventSendTimeout)
	defer cancel()

	order, err := s.orderService.CreateOrder(ctx, CreateOrderParams{
		SessionID:       sessionID,
		Items:           flow.items,
		Summary:         *flow.summary,
		ShippingAddress: flow.shipping.ToAddress(),
		PaymentMethod:   flow.payment,
	})
	if err != nil {
		// 模擬付款不會失敗，建立失敗時退回付款步驟讓使用者重送
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to create order")
		flow.step = model.CheckoutStepPayment
		flow.items = nil
		return
	}

	if err := s.cartService.Clear(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear cart after checkout")
	}
	flow.orderID = order.OrderID
	flow.items = nil
	flow.step = model.CheckoutStepSuccess
}
