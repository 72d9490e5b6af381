package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
	"github.com/redis/go-redis/v9"
)

/*
購物車存在 redis，讓多個 api instance 共用同一個 session 的購物車
cart:{session}:items     productID -> quantity
cart:{session}:products  productID -> 商品快照 json
cart:{session}:order     productID -> 加入順序
cart:{session}:seq       加入順序計數器
所有 key 每次寫入都會刷新 TTL
*/
type CartRepo struct {
	CartCache *redis.Client
	ttl       time.Duration
}

var _ repository.ICartRepository = (*CartRepo)(nil)

func NewCartRepo(cartCache *redis.Client, ttl time.Duration) *CartRepo {
	return &CartRepo{CartCache: cartCache, ttl: ttl}
}

func generateCartItemKey(sessionID string) string {
	return fmt.Sprintf("cart:%s:items", sessionID)
}

func generateCartProductKey(sessionID string) string {
	return fmt.Sprintf("cart:%s:products", sessionID)
}

func generateCartOrderKey(sessionID string) string {
	return fmt.Sprintf("cart:%s:order", sessionID)
}

func generateCartSeqKey(sessionID string) string {
	return fmt.Sprintf("cart:%s:seq", sessionID)
}

func cartKeys(sessionID string) []string {
	return []string{
		generateCartItemKey(sessionID),
		generateCartProductKey(sessionID),
		generateCartOrderKey(sessionID),
		generateCartSeqKey(sessionID),
	}
}

// 已存在就累加，不存在就寫入快照並記錄順序
const addItemScript = `
	local product_id = ARGV[1]
	local delta = tonumber(ARGV[2])
	local ttl = tonumber(ARGV[3])

	local qty
	if redis.call('HEXISTS', KEYS[1], product_id) == 1 then
		qty = redis.call('HINCRBY', KEYS[1], product_id, delta)
	else
		local seq = redis.call('INCR', KEYS[4])
		redis.call('HSET', KEYS[3], product_id, seq)
		redis.call('HSET', KEYS[2], product_id, ARGV[4])
		redis.call('HSET', KEYS[1], product_id, delta)
		qty = delta
	end

	if ttl > 0 then
		for i = 1, #KEYS do
			redis.call('EXPIRE', KEYS[i], ttl)
		end
	end
	return qty
`

// 商品不存在回傳 -1，數量 <= 0 直接刪除
// 四個 key 一起續期，seq 過期會讓新商品的順序重複
const setQuantityScript = `
	local product_id = ARGV[1]
	local qty = tonumber(ARGV[2])
	local ttl = tonumber(ARGV[3])

	if redis.call('HEXISTS', KEYS[1], product_id) == 0 then
		return -1
	end

	if qty <= 0 then
		redis.call('HDEL', KEYS[1], product_id)
		redis.call('HDEL', KEYS[2], product_id)
		redis.call('HDEL', KEYS[3], product_id)
		qty = 0
	else
		redis.call('HSET', KEYS[1], product_id, qty)
	end

	if ttl > 0 then
		for i = 1, #KEYS do
			redis.call('EXPIRE', KEYS[i], ttl)
		end
	end
	return qty
`

func (r *CartRepo) ttlSeconds() int64 {
	return int64(r.ttl / time.Second)
}

// Get 依加入順序組回購物車
func (r *CartRepo) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	pipe := r.CartCache.Pipeline()
	itemsCmd := pipe.HGetAll(ctx, generateCartItemKey(sessionID))
	productsCmd := pipe.HGetAll(ctx, generateCartProductKey(sessionID))
	orderCmd := pipe.HGetAll(ctx, generateCartOrderKey(sessionID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get cart %s: %w", sessionID, err)
	}

	type seqItem struct {
		seq  int64
		item model.CartItem
	}
	items := make([]seqItem, 0, len(itemsCmd.Val()))
	for productID, quantityStr := range itemsCmd.Val() {
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for product %s: %w", productID, err)
		}
		if quantity <= 0 {
			continue
		}

		var item model.CartItem
		raw, ok := productsCmd.Val()[productID]
		if !ok {
			return nil, fmt.Errorf("missing snapshot for product %s in cart %s", productID, sessionID)
		}
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("invalid snapshot for product %s: %w", productID, err)
		}
		item.Quantity = quantity

		seq, err := strconv.ParseInt(orderCmd.Val()[productID], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid order for product %s: %w", productID, err)
		}
		items = append(items, seqItem{seq: seq, item: item})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].seq < items[j].seq })

	cart := model.NewCart(sessionID)
	for _, si := range items {
		cart.Items = append(cart.Items, si.item)
	}
	return cart, nil
}

func (r *CartRepo) AddItem(ctx context.Context, sessionID string, item model.CartItem) error {
	snapshot := item
	snapshot.Quantity = 0
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal cart item: %w", err)
	}

	_, err = r.CartCache.Eval(ctx, addItemScript, cartKeys(sessionID),
		item.ProductID, item.Quantity, r.ttlSeconds(), string(data)).Result()
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	return nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, sessionID string, productID int, quantity int) error {
	_, err := r.CartCache.Eval(ctx, setQuantityScript, cartKeys(sessionID),
		productID, quantity, r.ttlSeconds()).Result()
	if err != nil {
		return fmt.Errorf("failed to set cart quantity: %w", err)
	}
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, sessionID string, productID int) error {
	return r.SetQuantity(ctx, sessionID, productID, 0)
}

// Clear 清空購物車
func (r *CartRepo) Clear(ctx context.Context, sessionID string) error {
	err := r.CartCache.Del(ctx, cartKeys(sessionID)...).Err()
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
