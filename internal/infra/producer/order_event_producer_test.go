package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	evt_model "github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model/event"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed int
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed++
	return nil
}

func TestProduceStatusChangedEvent(t *testing.T) {
	w := &fakeWriter{}
	p := newOrderEventProducer(w, DefaultConfig([]string{"localhost:9092"}, "order-events"))

	at := time.Date(2025, 6, 1, 10, 0, 3, 0, time.UTC)
	evt := evt_model.NewOrderStatusChangedEvent("ORD-1", model.OrderStatusProcessing, model.OrderStatusConfirmed, at)
	require.NoError(t, p.Produce(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	require.Equal(t, "ORD-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	require.Equal(t, "event_type", msg.Headers[0].Key)
	require.Equal(t, string(evt_model.OrderStatusChangedEventName), string(msg.Headers[0].Value))

	var decoded evt_model.OrderStatusChangedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, model.OrderStatusConfirmed, decoded.ToState)
	require.Equal(t, evt.EventID, decoded.EventID)
}

func TestProduceWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newOrderEventProducer(w, DefaultConfig([]string{"localhost:9092"}, "order-events"))

	err := p.Produce(context.Background(), evt_model.NewOrderCreatedEvent(&model.Order{OrderID: "ORD-1"}))
	require.ErrorContains(t, err, "broker down")
}

func TestProduceAfterClose(t *testing.T) {
	w := &fakeWriter{}
	p := newOrderEventProducer(w, DefaultConfig([]string{"localhost:9092"}, "order-events"))

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	require.Equal(t, 1, w.closed)

	err := p.Produce(context.Background(), evt_model.NewOrderCreatedEvent(&model.Order{OrderID: "ORD-1"}))
	require.ErrorIs(t, err, ErrProducerClosed)
}

func TestNewOrderEventProducerValidate(t *testing.T) {
	_, err := NewOrderEventProducer(DefaultConfig(nil, "order-events"))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewOrderEventProducer(DefaultConfig([]string{"localhost:9092"}, ""))
	require.ErrorIs(t, err, ErrInvalidConfig)

	p, err := NewOrderEventProducer(DefaultConfig([]string{"localhost:9092"}, "order-events"))
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestNoopProducer(t *testing.T) {
	var p IOrderEventProducer = &NoopOrderEventProducer{}
	require.NoError(t, p.Produce(context.Background(), evt_model.NewOrderCreatedEvent(&model.Order{OrderID: "ORD-1"})))
	require.NoError(t, p.Close())
}
