package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/cart"
	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const OrdersTopic = "cashier-orders"

// messageWriter abstracts kafka.Writer so tests can inject a fake.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaOrderSubmitter publishes checked-out orders to Kafka instead of
// posting them to the back office. The order id is generated locally and used
// as the message key.
type KafkaOrderSubmitter struct {
	writer  messageWriter
	storeID string
	now     func() time.Time
}

var _ cart.OrderSubmitter = (*KafkaOrderSubmitter)(nil)

func NewKafkaOrderSubmitter(storeID string, brokers ...string) *KafkaOrderSubmitter {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  OrdersTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newKafkaOrderSubmitterWith(w, storeID)
}

func newKafkaOrderSubmitterWith(w messageWriter, storeID string) *KafkaOrderSubmitter {
	return &KafkaOrderSubmitter{writer: w, storeID: storeID, now: time.Now}
}

type orderEvent struct {
	OrderID     string              `json:"order_id"`
	StoreID     string              `json:"store_id"`
	SubmittedAt time.Time           `json:"submitted_at"`
	Order       domain.OrderPayload `json:"order"`
}

func (k *KafkaOrderSubmitter) SubmitOrder(ctx context.Context, payload domain.OrderPayload) (string, error) {
	orderID := uuid.NewString()
	value, err := json.Marshal(orderEvent{
		OrderID:     orderID,
		StoreID:     k.storeID,
		SubmittedAt: k.now().UTC(),
		Order:       payload,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(orderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.submitted")},
			{Key: "store_id", Value: []byte(k.storeID)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to publish order %s: %w", orderID, err)
	}
	return orderID, nil
}

// Close flushes and closes the underlying writer when it supports it.
func (k *KafkaOrderSubmitter) Close() error {
	if c, ok := k.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
