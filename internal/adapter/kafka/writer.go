// Package kafka publishes derived status records to the optional
// downstream status topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/gulfwatch/red-tide-etl/internal/config"
	"github.com/gulfwatch/red-tide-etl/internal/domain"
)

// Writer produces status messages to the configured Kafka topic.
// It implements pipeline.StatusPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the status topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaStatusTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishResults serializes the flattened run results and writes them in
// one WriteMessages call, so a run lands on the topic atomically from
// the producer's side.
func (w *Writer) PublishResults(ctx context.Context, results domain.RunResults, lastUpdated string) error {
	records := results.Flatten(lastUpdated)
	if len(records) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i], results.RunID)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write status messages: %w", err)
	}
	w.logger.Debug("status records published", "count", len(msgs), "run_id", results.RunID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a StatusRecord into a Kafka message keyed
// by slug so consumers see per-location ordering.
func serializeToMessage(rec domain.StatusRecord, runID string) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize status record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Slug),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "location_type", Value: []byte(rec.LocationType)},
			{Key: "run_id", Value: []byte(runID)},
		},
	}, nil
}
