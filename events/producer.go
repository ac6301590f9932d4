package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes order events to a Kafka topic.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

// Publish sends one JSON-encoded event keyed for partition ordering.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Default is the process-wide producer, nil when eventing is not configured.
var Default *Producer

// Init wires the default producer from a comma-separated broker list. A blank
// list leaves eventing disabled.
func Init(brokers, topic string) {
	if strings.TrimSpace(brokers) == "" {
		return
	}
	if topic == "" {
		topic = "seamart.orders"
	}
	Default = NewProducer(strings.Split(brokers, ","), topic)
}
