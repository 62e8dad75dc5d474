package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/coinworks/adwidget/internal/domain"
	"github.com/coinworks/adwidget/internal/infra"
)

// KafkaSink mirrors interaction events onto a Kafka topic for offline
// analytics. Optional; when the producer is disabled every delivery is
// a successful no-op.
type KafkaSink struct {
	producer *infra.KafkaProducer
	topic    string
}

// NewKafkaSink creates a mirror sink publishing to topic, keyed by ad
// id so per-ad event ordering survives partitioning.
func NewKafkaSink(producer *infra.KafkaProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Deliver(ctx context.Context, ev domain.InteractionEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	key := []byte(strconv.FormatInt(ev.AdID, 10))
	return s.producer.Publish(ctx, s.topic, key, value)
}
