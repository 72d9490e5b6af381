package memory

import (
	"context"
	"sync"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
)

// 單一 process 內的購物車，session 結束後不保留
type CartRepo struct {
	mu    sync.Mutex
	carts map[string]*model.Cart
}

var _ repository.ICartRepository = (*CartRepo)(nil)

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: make(map[string]*model.Cart)}
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		return model.NewCart(sessionID), nil
	}
	return &model.Cart{SessionID: sessionID, Items: cart.Snapshot()}, nil
}

func (r *CartRepo) AddItem(ctx context.Context, sessionID string, item model.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		cart = model.NewCart(sessionID)
		r.carts[sessionID] = cart
	}
	if idx, found := cart.Find(item.ProductID); found {
		cart.Items[idx].Quantity += item.Quantity
		return nil
	}
	cart.Items = append(cart.Items, model.CopyCartItems([]model.CartItem{item})...)
	return nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, sessionID string, productID int, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		return nil
	}
	idx, found := cart.Find(productID)
	if !found {
		return nil
	}
	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return nil
	}
	cart.Items[idx].Quantity = quantity
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, sessionID string, productID int) error {
	return r.SetQuantity(ctx, sessionID, productID, 0)
}

func (r *CartRepo) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
	return nil
}
