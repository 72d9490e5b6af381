package producer

import (
	"errors"
	"time"
)

var ErrInvalidConfig = errors.New("invalid kafka producer config")

type Config struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	// 最大重試次數
	RetryAttempts int
	WriteTimeout  time.Duration
}

// DefaultConfig 事件量很小，BatchTimeout 設短一點避免延遲
func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:       brokers,
		Topic:         topic,
		BatchSize:     100,
		BatchTimeout:  50 * time.Millisecond,
		RequiredAcks:  -1, // 等待所有副本確認
		RetryAttempts: 3,
		WriteTimeout:  5 * time.Second,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.Join(ErrInvalidConfig, errors.New("brokers is empty"))
	}
	if c.Topic == "" {
		return errors.Join(ErrInvalidConfig, errors.New("topic is empty"))
	}
	return nil
}
