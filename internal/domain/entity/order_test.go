package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "delivery", "completed", "canceled"} {
		st, ok := entity.ParseOrderStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, entity.OrderStatus(s), st)
	}
	_, ok := entity.ParseOrderStatus("delivered!")
	assert.False(t, ok)
	_, ok = entity.ParseOrderStatus("")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to entity.OrderStatus
		want     bool
	}{
		{entity.OrderStatusPending, entity.OrderStatusDelivery, true},
		{entity.OrderStatusPending, entity.OrderStatusCompleted, false},
		{entity.OrderStatusProcessing, entity.OrderStatusPending, true},
		{entity.OrderStatusDelivery, entity.OrderStatusCompleted, true},
		{entity.OrderStatusDelivery, entity.OrderStatusPending, false},
		{entity.OrderStatusCompleted, entity.OrderStatusCanceled, false},
		{entity.OrderStatusCanceled, entity.OrderStatusPending, false},
		{entity.OrderStatusDelivery, entity.OrderStatusDelivery, true},
		{entity.OrderStatusCompleted, entity.OrderStatusCompleted, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestEntersDelivery(t *testing.T) {
	assert.True(t, entity.OrderStatusPending.EntersDelivery(entity.OrderStatusDelivery))
	assert.True(t, entity.OrderStatusProcessing.EntersDelivery(entity.OrderStatusDelivery))
	assert.False(t, entity.OrderStatusDelivery.EntersDelivery(entity.OrderStatusDelivery),
		"reescribir delivery no es una nueva entrega")
	assert.False(t, entity.OrderStatusPending.EntersDelivery(entity.OrderStatusCanceled))
}
