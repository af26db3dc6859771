// Package events publishes domain events to the RabbitMQ topic exchange.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	Exchange = "shopzone.events"
	Producer = "shopzone-storefront"

	OrderPlacedRoutingKey = "order.placed.v1"
	OrderPlacedName       = "OrderPlaced"
	OrderPlacedVersion    = 1
)

// Envelope wraps every event payload.
type Envelope[T any] struct {
	EventName    string    `json:"eventName"`
	EventVersion int       `json:"eventVersion"`
	EventID      string    `json:"eventId"`
	Producer     string    `json:"producer"`
	PartitionKey string    `json:"partitionKey"`
	OccurredAt   time.Time `json:"occurredAt"`
	Payload      T         `json:"payload"`
}

func NewEnvelope[T any](name string, version int, partitionKey string, payload T) Envelope[T] {
	return Envelope[T]{
		EventName:    name,
		EventVersion: version,
		EventID:      uuid.NewString(),
		Producer:     Producer,
		PartitionKey: partitionKey,
		OccurredAt:   time.Now().UTC(),
		Payload:      payload,
	}
}

// Validate checks the event identity.
func (e Envelope[T]) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion: %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	return nil
}

// OrderItem is one line of an OrderPlaced payload.
type OrderItem struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderPlaced is emitted after an order was stored.
type OrderPlaced struct {
	OrderNumber   string      `json:"orderNumber"`
	SessionID     string      `json:"sessionId"`
	Email         string      `json:"email"`
	PaymentMethod string      `json:"paymentMethod"`
	Subtotal      float64     `json:"subtotal"`
	Shipping      float64     `json:"shipping"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Items         []OrderItem `json:"items"`
}
