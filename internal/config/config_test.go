package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// LoadConfig 使用全域 viper，子測試依序執行
func TestLoadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cf, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)

		require.Equal(t, "8080", cf.ServerPort)
		require.Equal(t, "memory", cf.CartStore)
		require.Equal(t, "memory", cf.UserStore)
		require.Equal(t, 2500*time.Millisecond, cf.ProcessingDelay)
		require.Equal(t, 25*time.Second, cf.StatusDeliveredAfter)
		require.Equal(t, 5*24*time.Hour, cf.DeliveryEstimate)
		require.Equal(t, 10, cf.AuthRateBurst)

		fee, threshold, taxRate, err := cf.Pricing()
		require.NoError(t, err)
		require.True(t, decimal.RequireFromString("9.99").Equal(fee))
		require.True(t, decimal.NewFromInt(50).Equal(threshold))
		require.True(t, decimal.RequireFromString("0.08").Equal(taxRate))
	})

	t.Run("file and env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.env")
		content := "SERVER_PORT=9090\nCHECKOUT_PROCESSING_DELAY=1s\nTAX_RATE=0.1\nAUTH_RATE_LIMIT=2.5\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("CART_STORE", "redis")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

		cf, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "9090", cf.ServerPort)
		require.Equal(t, time.Second, cf.ProcessingDelay)
		require.Equal(t, "redis", cf.CartStore)
		require.Equal(t, 2.5, cf.AuthRateLimit)
		require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cf.KafkaBrokers)

		_, _, taxRate, err := cf.Pricing()
		require.NoError(t, err)
		require.True(t, decimal.RequireFromString("0.1").Equal(taxRate))
	})
}

func TestPricingInvalid(t *testing.T) {
	cf := &Config{ShippingFee: "abc", FreeShippingThreshold: "50", TaxRate: "0.08"}
	_, _, _, err := cf.Pricing()
	require.ErrorContains(t, err, "SHIPPING_FEE")
}
