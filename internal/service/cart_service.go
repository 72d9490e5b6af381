package service

import (
	"context"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
)

// 購物車沒有錯誤狀態，所有操作對目前狀態都成立
// 回傳的 error 只來自儲存層
type ICartService interface {
	GetCart(ctx context.Context, sessionID string) (*model.Cart, error)
	// AddItem quantity < 1 視為 1
	AddItem(ctx context.Context, sessionID string, productID int, quantity int) (*model.Cart, error)
	// SetQuantity 不是累加，<= 0 直接移除
	SetQuantity(ctx context.Context, sessionID string, productID int, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int) (*model.Cart, error)
	Clear(ctx context.Context, sessionID string) error
	Summary(cart *model.Cart) model.OrderSummary
}

type CartService struct {
	cartRepo       repository.ICartRepository
	catalogService ICatalogService
	pricing        Pricing
}

var _ ICartService = (*CartService)(nil)

func NewCartService(cartRepo repository.ICartRepository, catalogService ICatalogService, pricing Pricing) *CartService {
	if util.IsNil(cartRepo) {
		panic("NewCartService: cartRepo is nil")
	}
	if util.IsNil(catalogService) {
		panic("NewCartService: catalogService is nil")
	}
	return &CartService{cartRepo: cartRepo, catalogService: catalogService, pricing: pricing}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	return s.cartRepo.Get(ctx, sessionID)
}

// AddItem 商品不存在回傳 ErrProductNotFound
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int, quantity int) (*model.Cart, error) {
	product, err := s.catalogService.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}
	if err := s.cartRepo.AddItem(ctx, sessionID, model.NewCartItem(*product, quantity)); err != nil {
		return nil, err
	}
	return s.cartRepo.Get(ctx, sessionID)
}

func (s *CartService) SetQuantity(ctx context.Context, sessionID string, productID int, quantity int) (*model.Cart, error) {
	if err := s.cartRepo.SetQuantity(ctx, sessionID, productID, quantity); err != nil {
		return nil, err
	}
	return s.cartRepo.Get(ctx, sessionID)
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int) (*model.Cart, error) {
	if err := s.cartRepo.RemoveItem(ctx, sessionID, productID); err != nil {
		return nil, err
	}
	return s.cartRepo.Get(ctx, sessionID)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.cartRepo.Clear(ctx, sessionID)
}

func (s *CartService) Summary(cart *model.Cart) model.OrderSummary {
	return s.pricing.Summarize(cart.Items)
}
