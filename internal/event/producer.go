package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopsphere/storefront/internal/domain"
	pkgkafka "github.com/shopsphere/storefront/pkg/kafka"
	"github.com/shopsphere/storefront/pkg/logger"
)

// Kafka topic constants for cart domain events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
)

const (
	aggregateTypeCart = "cart"
	sourceStorefront  = "storefront"
)

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	ProfileID  string            `json:"profile_id"`
	Items      []domain.LineItem `json:"items"`
	ItemCount  int               `json:"item_count"`
	TotalPrice int64             `json:"total_price"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	ProfileID string `json:"profile_id"`
}

// NopPublisher discards all events. Used when Kafka is disabled.
type NopPublisher struct{}

// PublishCartUpdated discards the event.
func (NopPublisher) PublishCartUpdated(context.Context, *domain.Cart) error { return nil }

// PublishCartCleared discards the event.
func (NopPublisher) PublishCartCleared(context.Context, string) error { return nil }

// Producer publishes cart domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated emits a cart.updated event with the full item sequence
// and derived totals.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	totals := cart.Totals()
	data := CartUpdatedData{
		ProfileID:  cart.ProfileID,
		Items:      cart.Items,
		ItemCount:  totals.ItemCount,
		TotalPrice: totals.TotalPrice,
	}

	evt, err := pkgkafka.NewEvent("cart.updated", cart.ProfileID, aggregateTypeCart, sourceStorefront, data)
	if err != nil {
		return fmt.Errorf("build cart.updated event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	return p.kafka.Publish(ctx, TopicCartUpdated, evt)
}

// PublishCartCleared emits a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, profileID string) error {
	evt, err := pkgkafka.NewEvent("cart.cleared", profileID, aggregateTypeCart, sourceStorefront, CartClearedData{ProfileID: profileID})
	if err != nil {
		return fmt.Errorf("build cart.cleared event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	return p.kafka.Publish(ctx, TopicCartCleared, evt)
}
