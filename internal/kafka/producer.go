package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// CaseEventProducer publishes case events to the alerting pipeline (swapped
// for a mock in tests).
type CaseEventProducer interface {
	ProduceCaseEvent(ctx context.Context, event string, payload map[string]interface{})
}

// Producer writes caso.creado / caso.actualizado events to a Kafka topic
// (best-effort, never blocks the API).
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer returns a producer. With no brokers or an empty topic the
// methods are no-ops.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// ProduceCaseEvent publishes one event. payload: id_caso, id_alarma,
// nombre_agente, cedula_agente, nombre_victima, cedula_victima, estado.
func (p *Producer) ProduceCaseEvent(ctx context.Context, event string, payload map[string]interface{}) {
	if p.writer == nil {
		return
	}
	msg := map[string]interface{}{"event": event}
	for k, v := range payload {
		msg[k] = v
	}
	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("kafka: marshal case event: %v", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		log.Printf("kafka: write case event: %v", err)
	}
}

// Close closes the writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// ParseBrokers splits "host1:9092,host2:9092" into a slice.
func ParseBrokers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
