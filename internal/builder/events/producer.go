// Package events publishes domain events for downstream consumers
// (indexing, notifications) over Kafka. Production is asynchronous and
// best-effort: a full queue drops the event with a warning rather than
// blocking a request.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	CompanyCreated EventType = "company_created"
	CompanyUpdated EventType = "company_updated"
	JobCreated     EventType = "job_created"
)

type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

type message struct {
	event Event
	key   string
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan message
	logger    *zap.Logger
	closeChan chan struct{}
}

// NewProducer dials the first broker to ensure the topic exists, retrying
// with exponential backoff while the broker comes up, then starts the
// asynchronous send loop.
func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	var conn *kafka.Conn
	dial := func() error {
		var err error
		conn, err = kafka.Dial("tcp", brokers[0])
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(dial, policy); err != nil {
		return nil, err
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
	}
	if err := conn.CreateTopics(topicConfigs...); err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}

	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan message, 1000),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
	}

	go p.eventLoop()
	return p, nil
}

// Produce queues an event keyed by the entity id. Drops the event when the
// queue is full.
func (p *Producer) Produce(eventType EventType, key string, payload interface{}) {
	select {
	case p.events <- message{event: Event{Type: eventType, Payload: payload}, key: key}:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("key", key),
		)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case msg := <-p.events:
			p.sendEvent(context.Background(), msg)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, msg message) {
	value, err := jsonMarshal(msg.event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("key", msg.key),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.key),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(msg.event.Type)),
			zap.String("key", msg.key),
		)
		return
	}
}

func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}
