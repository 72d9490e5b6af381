package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
)

/*
訂單只存在記憶體
寫入與讀取都是深拷貝，外部拿到的訂單改了也不會影響存放的資料
*/
type OrderRepo struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
}

var _ repository.IOrderRepository = (*OrderRepo)(nil)

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{orders: make(map[string]*model.Order)}
}

func (r *OrderRepo) Create(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderID]; ok {
		return fmt.Errorf("order %s: %w", order.OrderID, repository.ErrAlreadyExists)
	}
	r.orders[order.OrderID] = order.Clone()
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, orderID string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, repository.ErrNotFound)
	}
	return order.Clone(), nil
}

func (r *OrderRepo) Update(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderID]; !ok {
		return fmt.Errorf("order %s: %w", order.OrderID, repository.ErrNotFound)
	}
	r.orders[order.OrderID] = order.Clone()
	return nil
}

func (r *OrderRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*model.Order, 0)
	for _, order := range r.orders {
		if order.SessionID == sessionID {
			res = append(res, order.Clone())
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].OrderID > res[j].OrderID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}
