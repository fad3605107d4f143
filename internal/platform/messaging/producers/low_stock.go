package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/inventory-stock-ledger/internal/config"
)

// LowStockAlertProducer publishes advisory low-stock events after ledger
// writes. Alerts are best-effort: delivery is asynchronous and failures are
// only logged, never surfaced to the write that triggered them.
type LowStockAlertProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewLowStockAlertProducer creates the alert producer and ensures its topic exists
func NewLowStockAlertProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*LowStockAlertProducer, error) {
	if cfg.LowStockTopic == "" {
		return nil, fmt.Errorf("kafka low-stock topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for low-stock alert producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.LowStockTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure low-stock topic %s exists: %w", cfg.LowStockTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.LowStockTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Alerts are advisory; never block the ledger write path
		WriteTimeout: cfg.WriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write low-stock alerts asynchronously", "topic", cfg.LowStockTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote low-stock alerts asynchronously", "topic", cfg.LowStockTopic, "count", len(messages))
			}
		},
	}

	return &LowStockAlertProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.LowStockTopic,
	}, nil
}

func (p *LowStockAlertProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal low-stock alert: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish low-stock alert",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish low-stock alert to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published low-stock alert",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *LowStockAlertProducer) Close() error {
	p.logger.Info("Closing low-stock alert producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
