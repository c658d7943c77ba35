package notifications

import (
	"context"
	"fmt"
	"time"

	"seatwise/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes booking events for the external notification system.
type Producer interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
	Close() error
}

// ProducerConfig contains configuration for the Kafka booking-event producer.
type ProducerConfig struct {
	Brokers  []string
	Topic    string
	RetryMax int
	Timeout  time.Duration
}

// DefaultProducerConfig returns a default producer configuration.
func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:  []string{"localhost:9092"},
		Topic:    "booking-events",
		RetryMax: 3,
		Timeout:  10 * time.Second,
	}
}

// KafkaProducer publishes booking events through a sarama sync producer.
type KafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	log      *logger.Logger
}

// NewKafkaProducer creates a Kafka booking-event producer. Writes are
// idempotent and acknowledged by all in-sync replicas; events are hashed
// onto partitions by venue so per-venue ordering holds.
func NewKafkaProducer(config *ProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaProducer{
		producer: producer,
		config:   config,
		log:      logger.GetDefault(),
	}, nil
}

func (p *KafkaProducer) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: event.OccurredAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	p.log.Debug("booking event published",
		"type", string(event.Type),
		"booking_id", event.BookingID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.producer.Close()
}
