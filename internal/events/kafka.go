package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReceiptPublisher pushes completed checkouts onto a Kafka topic for
// downstream listeners (receipt emails, analytics).
type ReceiptPublisher struct {
	writer *kafka.Writer
}

func NewReceiptPublisher(topic string, brokers ...string) *ReceiptPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &ReceiptPublisher{writer: w}
}

// HandlePostCheckout is registered on the dispatcher.
func (p *ReceiptPublisher) HandlePostCheckout(ctx context.Context, event PostCheckout) error {
	payload := map[string]any{
		"order_id":     event.Order.ID,
		"customer_id":  event.Order.CustomerID,
		"line_items":   event.Order.LineItems,
		"grand_total":  event.Order.GrandTotal,
		"completed_at": time.Now().UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Order.ID), // order id for partition ordering
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("checkout.completed")},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *ReceiptPublisher) Close() error {
	return p.writer.Close()
}
