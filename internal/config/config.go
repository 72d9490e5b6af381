package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	viper "github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取  需要使用讀寫鎖
*/
var configSingleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServerPort   string        `mapstructure:"SERVER_PORT"`
	Env          string        `mapstructure:"ENV"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
	JwtSecret    string        `mapstructure:"JWT_SECRET"`
	TokenTTL     time.Duration `mapstructure:"TOKEN_DURATION"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	CartStore    string        `mapstructure:"CART_STORE"`
	RedisAddr    string        `mapstructure:"REDIS_ADDR"`
	RedisPas     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB      int           `mapstructure:"REDIS_DB"`
	UserStore    string        `mapstructure:"USER_STORE"`
	DbName       string        `mapstructure:"POSTGRES_DB"`
	DbHost       string        `mapstructure:"POSTGRES_HOST"`
	DbPort       string        `mapstructure:"POSTGRES_PORT"`
	DbUser       string        `mapstructure:"POSTGRES_USER"`
	DbPas        string        `mapstructure:"POSTGRES_PASSWORD"`
	KafkaBrokers []string      `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string        `mapstructure:"KAFKA_ORDER_TOPIC"`

	ProcessingDelay       time.Duration `mapstructure:"CHECKOUT_PROCESSING_DELAY"`
	ShippingFee           string        `mapstructure:"SHIPPING_FEE"`
	FreeShippingThreshold string        `mapstructure:"FREE_SHIPPING_THRESHOLD"`
	TaxRate               string        `mapstructure:"TAX_RATE"`

	DeliveryEstimate          time.Duration `mapstructure:"DELIVERY_ESTIMATE"`
	StatusConfirmedAfter      time.Duration `mapstructure:"STATUS_CONFIRMED_AFTER"`
	StatusShippedAfter        time.Duration `mapstructure:"STATUS_SHIPPED_AFTER"`
	StatusOutForDeliveryAfter time.Duration `mapstructure:"STATUS_OUT_FOR_DELIVERY_AFTER"`
	StatusDeliveredAfter      time.Duration `mapstructure:"STATUS_DELIVERED_AFTER"`

	AuthRateLimit      float64  `mapstructure:"AUTH_RATE_LIMIT"`
	AuthRateBurst      int      `mapstructure:"AUTH_RATE_BURST"`
	CorsAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Pricing 解析金額設定
func (c *Config) Pricing() (fee, threshold, taxRate decimal.Decimal, err error) {
	if fee, err = decimal.NewFromString(c.ShippingFee); err != nil {
		return fee, threshold, taxRate, fmt.Errorf("invalid SHIPPING_FEE %q: %w", c.ShippingFee, err)
	}
	if threshold, err = decimal.NewFromString(c.FreeShippingThreshold); err != nil {
		return fee, threshold, taxRate, fmt.Errorf("invalid FREE_SHIPPING_THRESHOLD %q: %w", c.FreeShippingThreshold, err)
	}
	if taxRate, err = decimal.NewFromString(c.TaxRate); err != nil {
		return fee, threshold, taxRate, fmt.Errorf("invalid TAX_RATE %q: %w", c.TaxRate, err)
	}
	return fee, threshold, taxRate, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("CART_STORE", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("USER_STORE", "memory")
	v.SetDefault("POSTGRES_DB", "boutique")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("KAFKA_BROKERS", []string{})
	v.SetDefault("KAFKA_ORDER_TOPIC", "order-events")

	v.SetDefault("CHECKOUT_PROCESSING_DELAY", 2500*time.Millisecond)
	v.SetDefault("SHIPPING_FEE", "9.99")
	v.SetDefault("FREE_SHIPPING_THRESHOLD", "50")
	v.SetDefault("TAX_RATE", "0.08")

	v.SetDefault("DELIVERY_ESTIMATE", 5*24*time.Hour)
	v.SetDefault("STATUS_CONFIRMED_AFTER", 3*time.Second)
	v.SetDefault("STATUS_SHIPPED_AFTER", 8*time.Second)
	v.SetDefault("STATUS_OUT_FOR_DELIVERY_AFTER", 15*time.Second)
	v.SetDefault("STATUS_DELIVERED_AFTER", 25*time.Second)

	v.SetDefault("AUTH_RATE_LIMIT", 5.0)
	v.SetDefault("AUTH_RATE_BURST", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	muonce.Do(func() {
		configSingleton = &ConfigSingleTon{}
		cf, err := LoadConfig(configPath())
		if err != nil {
			log.Fatalf("error read config: %v", err)
		}
		configSingleton.Config = cf

		viper.OnConfigChange(func(e fsnotify.Event) {
			cf, err := LoadConfig(configPath())
			if err != nil {
				log.Printf("failed to reload config file %s: %v", e.Name, err)
				return
			}
			configSingleton.mu.Lock()
			configSingleton.Config = cf
			configSingleton.mu.Unlock()
		})
		if _, err := os.Stat(configPath()); err == nil {
			viper.WatchConfig()
		}
	})
}

// 設定檔路徑  預設為工作目錄下的 .env
func configPath() string {
	if p := os.Getenv("APP_CONFIG"); p != "" {
		return p
	}
	return ".env"
}

/*
單純回傳錯誤  由外部決定要不要Fatal, 畢竟有可能有替代方案
設定檔不存在時只使用環境變數與預設值
*/
func LoadConfig(path string) (*Config, error) {
	v := viper.GetViper()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}
