package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"pulse/pkg/logger"
)

// Producer interface defines the contract for publishing analytics alerts
type Producer interface {
	PublishChurnAlert(ctx context.Context, alert *ChurnAlert) error
	PublishRecomputeCompleted(ctx context.Context, event *RecomputeEvent) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka alert producer
type KafkaProducerConfig struct {
	Brokers          []string
	AlertTopic       string
	RecomputeTopic   string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		AlertTopic:       "churn-alerts",
		RecomputeTopic:   "analytics-recompute",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

// KafkaAlertProducer publishes analytics alerts to Kafka
type KafkaAlertProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	logger   *logger.Logger
}

// NewKafkaAlertProducer creates a new Kafka alert producer
func NewKafkaAlertProducer(config *KafkaProducerConfig, log *logger.Logger) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one user's alerts on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info("Kafka alert producer created", "brokers", config.Brokers, "alert_topic", config.AlertTopic)
	return &KafkaAlertProducer{producer: producer, config: config, logger: log}, nil
}

// PublishChurnAlert publishes a single churn alert to Kafka
func (kap *KafkaAlertProducer) PublishChurnAlert(ctx context.Context, alert *ChurnAlert) error {
	messageBytes, err := alert.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal churn alert: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: kap.config.AlertTopic,
		Key:   sarama.StringEncoder(alert.GetPartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("level"), Value: []byte(alert.Level)},
			{Key: []byte("tier"), Value: []byte(alert.Tier)},
			{Key: []byte("producer"), Value: []byte("pulse-analytics")},
			{Key: []byte("computed_at"), Value: []byte(alert.ComputedAt.Format(time.RFC3339))},
		},
		Timestamp: alert.ComputedAt,
	}

	partition, offset, err := kap.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send churn alert to Kafka: %w", err)
	}

	kap.logger.InfoContext(ctx, "churn alert published",
		"topic", kap.config.AlertTopic, "partition", partition, "offset", offset,
		"user_id", alert.UserID, "level", alert.Level)
	return nil
}

// PublishRecomputeCompleted announces a finished recompute pass
func (kap *KafkaAlertProducer) PublishRecomputeCompleted(ctx context.Context, event *RecomputeEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal recompute event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: kap.config.RecomputeTopic,
		Key:   sarama.StringEncoder(event.Trigger),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("trigger"), Value: []byte(event.Trigger)},
			{Key: []byte("producer"), Value: []byte("pulse-analytics")},
		},
		Timestamp: event.FinishedAt,
	}

	partition, offset, err := kap.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send recompute event to Kafka: %w", err)
	}

	kap.logger.InfoContext(ctx, "recompute event published",
		"topic", kap.config.RecomputeTopic, "partition", partition, "offset", offset,
		"users", event.UsersProcessed, "failures", event.Failures)
	return nil
}

// Close closes the Kafka producer
func (kap *KafkaAlertProducer) Close() error {
	if kap.producer != nil {
		if err := kap.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// HealthCheck validates the producer configuration
func (kap *KafkaAlertProducer) HealthCheck(ctx context.Context) error {
	if kap.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if kap.config.AlertTopic == "" || kap.config.RecomputeTopic == "" {
		return fmt.Errorf("health check failed - topics not configured")
	}
	return nil
}

// NoopProducer is used when Kafka is disabled; publishes are silently
// dropped so callers need no broker awareness.
type NoopProducer struct{}

func NewNoopProducer() Producer { return &NoopProducer{} }

func (NoopProducer) PublishChurnAlert(context.Context, *ChurnAlert) error { return nil }
func (NoopProducer) PublishRecomputeCompleted(context.Context, *RecomputeEvent) error {
	return nil
}
func (NoopProducer) Close() error                      { return nil }
func (NoopProducer) HealthCheck(context.Context) error { return nil }
