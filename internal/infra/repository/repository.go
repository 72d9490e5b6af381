package repository

import (
	"context"
	"errors"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// 商品目錄  唯讀
type IProductRepository interface {
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id int) (*model.Product, error)
	// GetCategories 依目錄定義順序
	GetCategories(ctx context.Context) ([]string, error)
}

/*
購物車以 session 為單位
Get 在購物車不存在時回傳空購物車，不回傳錯誤
*/
type ICartRepository interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	// AddItem 已存在則累加數量，否則依加入順序放在最後
	AddItem(ctx context.Context, sessionID string, item model.CartItem) error
	// SetQuantity quantity <= 0 時移除，商品不存在時不做事
	SetQuantity(ctx context.Context, sessionID string, productID int, quantity int) error
	RemoveItem(ctx context.Context, sessionID string, productID int) error
	Clear(ctx context.Context, sessionID string) error
}

type IOrderRepository interface {
	// Create 訂單編號重複時回傳 ErrAlreadyExists
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, orderID string) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	// ListBySession 新的在前
	ListBySession(ctx context.Context, sessionID string) ([]*model.Order, error)
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}
