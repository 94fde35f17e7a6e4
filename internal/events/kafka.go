// Package events moves courier dispatch offers over Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/config"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/segmentio/kafka-go"
)

// Publisher announces placed orders so that a courier can be offered the delivery.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *models.DeliveryOrder) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const eventOrderPlaced = "order.placed"

type kafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(cfg config.Kafka) Publisher {
	return NewPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.OffersTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	})
}

func NewPublisher(writer MessageWriter) Publisher {
	return &kafkaPublisher{writer: writer}
}

// PublishOrderPlaced keys the message by order id so redeliveries land on one partition.
func (p *kafkaPublisher) PublishOrderPlaced(ctx context.Context, order *models.DeliveryOrder) error {
	value, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery order: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(eventOrderPlaced)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order %s: %w", order.ID, err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// OfferHandler receives each decoded offer. An error leaves the message uncommitted.
type OfferHandler func(ctx context.Context, order *models.DeliveryOrder) error

type Consumer struct {
	reader  MessageReader
	handler OfferHandler
}

func NewKafkaConsumer(cfg config.Kafka, handler OfferHandler) *Consumer {
	return NewConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.OffersTopic,
		GroupID:  cfg.GroupID,
		MaxBytes: 10e6, // 10MB
	}), handler)
}

func NewConsumer(reader MessageReader, handler OfferHandler) *Consumer {
	return &Consumer{reader: reader, handler: handler}
}

// Run consumes until ctx is cancelled. Malformed messages are logged and committed so they do
// not block the partition.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}

			return fmt.Errorf("failed to fetch offer: %w", err)
		}

		logger := slog.With(slog.String("topic", msg.Topic), slog.Int("partition", msg.Partition), slog.Int64("offset", msg.Offset))

		var order models.DeliveryOrder
		if err := json.Unmarshal(msg.Value, &order); err != nil {
			logger.Warn("Dropping malformed offer", slog.String("error", err.Error()))
		} else if err := c.handler(ctx, &order); err != nil {
			logger.Error("Failed to handle offer", slog.String("orderId", order.ID), slog.String("error", err.Error()))

			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("Failed to commit offer", slog.String("error", err.Error()))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
