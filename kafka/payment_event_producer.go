package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/models"
)

// PaymentEventProducer publishes terminal payment statuses for downstream
// consumers. A producer built with no brokers is a no-op, so the server runs
// without Kafka in development.
type PaymentEventProducer struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

func NewPaymentEventProducer(brokers []string, topic string, logger *zap.Logger) *PaymentEventProducer {
	p := &PaymentEventProducer{topic: topic, logger: logger}
	if len(brokers) == 0 {
		logger.Info("Kafka brokers not configured, payment events disabled")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	logger.Info("Payment event producer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers),
	)
	return p
}

// SendPaymentEvent publishes one event keyed by order reference.
func (p *PaymentEventProducer) SendPaymentEvent(ctx context.Context, event models.PaymentEvent) error {
	if p.writer == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to send payment event",
			zap.String("event_type", event.Type),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (p *PaymentEventProducer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
