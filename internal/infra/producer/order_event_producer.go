package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	evt_model "github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model/event"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer is closed")

//go:generate mockgen -source=order_event_producer.go -destination=mock/order_event_producer_mock.go -package=mock

// 訂單事件發送
// key: orderID，同一張訂單的事件會進同一個 partition，保持順序
type IOrderEventProducer interface {
	Produce(ctx context.Context, evt evt_model.Event) error
	Close() error
}

// kafka.Writer 的最小介面，測試時可替換
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderEventProducer struct {
	writer messageWriter
	cfg    *Config
	closed atomic.Bool
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)

func NewOrderEventProducer(cfg *Config) (*OrderEventProducer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		WriteTimeout: cfg.WriteTimeout,
		MaxAttempts:  cfg.RetryAttempts,
		Async:        false,

		// 重連機制設置
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}

	return newOrderEventProducer(writer, cfg), nil
}

func newOrderEventProducer(writer messageWriter, cfg *Config) *OrderEventProducer {
	return &OrderEventProducer{writer: writer, cfg: cfg}
}

// Produce 同步發送，會block到寫入完成
func (p *OrderEventProducer) Produce(ctx context.Context, evt evt_model.Event) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	msg, err := prepareEventMessage(evt)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to produce %s to topic %s: %w", evt.Type(), p.cfg.Topic, err)
	}
	return nil
}

func (p *OrderEventProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func prepareEventMessage(evt evt_model.Event) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event %s: %w", evt.Type(), err)
	}

	return kafka.Message{
		Key:   []byte(evt.GetAggregateID()),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(evt.Type()),
			},
		},
	}, nil
}

// 沒有設定 kafka 時使用，只寫 log
type NoopOrderEventProducer struct{}

var _ IOrderEventProducer = (*NoopOrderEventProducer)(nil)

func (*NoopOrderEventProducer) Produce(ctx context.Context, evt evt_model.Event) error {
	log.Debug().
		Str("event_type", string(evt.Type())).
		Str("aggregate_id", evt.GetAggregateID()).
		Msg("kafka disabled, drop order event")
	return nil
}

func (*NoopOrderEventProducer) Close() error {
	return nil
}
