package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mercado-api/internal/application/ordering"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/events"
)

func TestNopPublisher(t *testing.T) {
	var p ordering.EventPublisher = events.NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), ordering.OrderEvent{Type: ordering.EventOrderPlaced}))
}

func TestNewKafkaPublisher_NoConectaAlCrear(t *testing.T) {
	// kgo.NewClient no abre conexiones hasta el primer uso.
	p, err := events.NewKafkaPublisher([]string{"127.0.0.1:1"}, "mercado.orders")
	require.NoError(t, err)
	p.Close()
}
