// Package events publica los eventos del ciclo de vida de los pedidos.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/jhoicas/Mercado-api/internal/application/ordering"
)

// KafkaPublisher publica cada evento como JSON en un tópico; la clave es el id del pedido
// para que los eventos de un mismo pedido caigan en la misma partición, en orden.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

var _ ordering.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher conecta con los brokers. El cliente se cierra con Close.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordRetries(3),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: crear cliente: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

// Publish envía el evento y espera la confirmación del broker.
func (p *KafkaPublisher) Publish(ctx context.Context, ev ordering.OrderEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(ev.OrderID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: producir %s: %w", ev.Type, err)
	}
	return nil
}

// Ping comprueba que algún broker responda.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close vacía lo pendiente y cierra el cliente.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// NopPublisher descarta los eventos (sin KAFKA_BROKERS).
type NopPublisher struct{}

var _ ordering.EventPublisher = NopPublisher{}

func (NopPublisher) Publish(context.Context, ordering.OrderEvent) error { return nil }
