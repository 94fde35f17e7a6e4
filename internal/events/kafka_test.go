package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/events"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}

	w.msgs = append(w.msgs, msgs...)

	return nil
}

func (w *fakeWriter) Close() error { return nil }

// fakeReader serves queued messages, then blocks until the context is cancelled.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		return msg, nil
	}
	r.mu.Unlock()

	<-ctx.Done()

	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.committed = append(r.committed, msgs...)

	return nil
}

func (r *fakeReader) Close() error { return nil }

func deliveryOrder(id string) *models.DeliveryOrder {
	return &models.DeliveryOrder{
		ID:            id,
		Restaurant:    models.Party{Name: "McDonald's", Location: models.Location{Lat: 10.7626, Lng: 106.6602}},
		Customer:      models.Party{Name: "Lan", Location: models.Location{Lat: 10.7769, Lng: 106.7009}},
		Total:         decimal.NewFromInt(152000),
		PaymentMethod: models.PaymentMethodCash,
	}
}

func TestPublishOrderPlaced(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		writer := &fakeWriter{}
		publisher := events.NewPublisher(writer)

		// Act
		err := publisher.PublishOrderPlaced(t.Context(), deliveryOrder("order-1"))

		// Assert
		require.NoError(t, err)
		require.Len(t, writer.msgs, 1)
		assert.Equal(t, []byte("order-1"), writer.msgs[0].Key)
		assert.Equal(t, "order.placed", string(writer.msgs[0].Headers[0].Value))

		var decoded models.DeliveryOrder
		require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &decoded))
		assert.Equal(t, "McDonald's", decoded.Restaurant.Name)
	})

	t.Run("Failure - Broker Error", func(t *testing.T) {
		brokerErr := errors.New("leader not available")
		publisher := events.NewPublisher(&fakeWriter{err: brokerErr})

		err := publisher.PublishOrderPlaced(t.Context(), deliveryOrder("order-1"))

		assert.ErrorIs(t, err, brokerErr)
	})
}

func TestConsumerRun(t *testing.T) {
	// Arrange
	valid, err := json.Marshal(deliveryOrder("order-1"))
	require.NoError(t, err)
	failing, err := json.Marshal(deliveryOrder("order-2"))
	require.NoError(t, err)

	reader := &fakeReader{queue: []kafka.Message{
		{Offset: 1, Value: valid},
		{Offset: 2, Value: []byte("not json")},
		{Offset: 3, Value: failing},
	}}

	ctx, cancel := context.WithCancel(t.Context())

	var handled []string

	consumer := events.NewConsumer(reader, func(_ context.Context, order *models.DeliveryOrder) error {
		handled = append(handled, order.ID)
		if order.ID == "order-2" {
			cancel()

			return errors.New("no courier")
		}

		return nil
	})

	// Act
	err = consumer.Run(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"order-1", "order-2"}, handled)
	require.Len(t, reader.committed, 2)
	assert.Equal(t, int64(1), reader.committed[0].Offset)
	assert.Equal(t, int64(2), reader.committed[1].Offset)
}
