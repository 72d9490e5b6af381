package appcontext

import (
	"context"
	"testing"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/config"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/producer"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository/memory"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository/redis_repo"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                       "development",
		JwtSecret:                 "0123456789abcdef0123456789abcdef",
		TokenTTL:                  time.Hour,
		SessionTTL:                time.Hour,
		CartStore:                 "memory",
		UserStore:                 "memory",
		KafkaTopic:                "order-events",
		ProcessingDelay:           2500 * time.Millisecond,
		ShippingFee:               "9.99",
		FreeShippingThreshold:     "50",
		TaxRate:                   "0.08",
		DeliveryEstimate:          5 * 24 * time.Hour,
		StatusConfirmedAfter:      3 * time.Second,
		StatusShippedAfter:        8 * time.Second,
		StatusOutForDeliveryAfter: 15 * time.Second,
		StatusDeliveredAfter:      25 * time.Second,
		AuthRateLimit:             5,
		AuthRateBurst:             10,
	}
}

func TestNewApplicationContextMemory(t *testing.T) {
	app, err := NewApplicationContext(testConfig())
	require.NoError(t, err)

	require.IsType(t, &memory.CartRepo{}, app.CartRepo)
	require.IsType(t, &memory.UserRepo{}, app.UserRepo)
	require.IsType(t, &producer.NoopOrderEventProducer{}, app.EventProducer)
	require.NotNil(t, app.AuthLimiter)
	require.NotNil(t, app.CheckoutService)

	products, err := app.ProductRepo.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 13)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Shutdown(ctx))
}

func TestNewApplicationContextRedisCart(t *testing.T) {
	mr := miniredis.RunT(t)
	cf := testConfig()
	cf.CartStore = "redis"
	cf.RedisAddr = mr.Addr()

	app, err := NewApplicationContext(cf)
	require.NoError(t, err)
	require.IsType(t, &redis_repo.CartRepo{}, app.CartRepo)

	cart, err := app.CartService.AddItem(context.Background(), "s1", 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, cart.TotalItems())

	require.NoError(t, app.Shutdown(context.Background()))
}

func TestNewApplicationContextInvalidConfig(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(cf *config.Config)
	}{
		{"unknown cart store", func(cf *config.Config) { cf.CartStore = "mongo" }},
		{"unknown user store", func(cf *config.Config) { cf.UserStore = "ldap" }},
		{"short jwt secret", func(cf *config.Config) { cf.JwtSecret = "short" }},
		{"bad tax rate", func(cf *config.Config) { cf.TaxRate = "eight percent" }},
		{"redis unreachable", func(cf *config.Config) {
			cf.CartStore = "redis"
			cf.RedisAddr = "127.0.0.1:1"
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cf := testConfig()
			tc.modify(cf)
			_, err := NewApplicationContext(cf)
			require.Error(t, err)
		})
	}
}
