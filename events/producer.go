// Package events publishes order and payment events to Kafka.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderPaid          = "order.paid"
	TopicOrderPaymentFailed = "order.payment_failed"
	TopicPaymentProcessed   = "payment.processed"
	TopicPaymentRefunded    = "payment.refunded"
)

// Publisher sends an event for data under topic. Delivery is best effort: a
// failed publish is logged and never fails the request that caused it.
type Publisher interface {
	Publish(topic, key string, data interface{})
}

// Event is the envelope written to every topic.
type Event struct {
	EventType  string      `json:"event_type"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type Producer struct {
	producer sarama.SyncProducer
	now      func() time.Time
}

// NewProducer connects a sync producer to brokers, retrying while the cluster
// comes up.
func NewProducer(brokers []string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	var (
		producer sarama.SyncProducer
		err      error
	)
	for i := 1; i <= 5; i++ {
		producer, err = sarama.NewSyncProducer(brokers, config)
		if err == nil {
			log.Printf("Kafka producer connected to %v", brokers)
			return NewProducerFrom(producer), nil
		}
		log.Printf("Waiting for Kafka... (%d/5) Error: %v", i, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("connect kafka %v: %w", brokers, err)
}

// NewProducerFrom wraps an existing sarama producer.
func NewProducerFrom(p sarama.SyncProducer) *Producer {
	return &Producer{producer: p, now: time.Now}
}

func (p *Producer) Publish(topic, key string, data interface{}) {
	payload, err := json.Marshal(Event{EventType: topic, Data: data, OccurredAt: p.now()})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", topic, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Value:     sarama.ByteEncoder(payload),
		Timestamp: p.now(),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Printf("Failed to send %s event: %v", topic, err)
		return
	}
	log.Printf("Published %s (key=%s)", topic, key)
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(string, string, interface{}) {}
