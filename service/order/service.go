// Package order turns checkout submissions into stored orders.
package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopzone.GO/core/events"
	"shopzone.GO/model/entity"
	"shopzone.GO/service/checkout"
)

type Store interface {
	Create(ctx context.Context, o *entity.Order) error
}

// Service implements checkout.OrderPlacer.
type Service struct {
	store     Store
	publisher events.Publisher
	log       *zap.Logger
	newNumber func() string
}

func NewService(store Store, publisher events.Publisher, log *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, publisher: publisher, log: log, newNumber: NewNumber}
}

// NewNumber returns an order number like ORD-1A2B3C4D.
func NewNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// PlaceOrder stores the order as confirmed and publishes OrderPlaced.
// A failed publish is logged; the order stands.
func (s *Service) PlaceOrder(ctx context.Context, sub checkout.Submission) (checkout.Receipt, error) {
	o := build(sub)
	o.Number = s.newNumber()
	if err := s.store.Create(ctx, o); err != nil {
		return checkout.Receipt{}, err
	}

	env := events.NewEnvelope(events.OrderPlacedName, events.OrderPlacedVersion, o.Number, payload(o))
	if err := s.publisher.Publish(ctx, events.OrderPlacedRoutingKey, env); err != nil {
		s.log.Warn("order placed event not published", zap.String("order", o.Number), zap.Error(err))
	}
	s.log.Info("order placed",
		zap.String("order", o.Number),
		zap.String("session", sub.SessionID),
		zap.String("total", sub.Breakdown.Total.StringFixed(2)),
	)

	return checkout.Receipt{
		OrderNumber: o.Number,
		Status:      string(o.Status),
		Email:       o.ShippingAddress.Email,
		Total:       sub.Breakdown.Total,
		PlacedAt:    o.CreatedAt,
	}, nil
}

func build(sub checkout.Submission) *entity.Order {
	b := sub.Breakdown
	o := &entity.Order{
		SessionID: sub.SessionID,
		Status:    entity.OrderConfirmed,
		ShippingAddress: entity.ShippingAddress{
			FirstName: sub.Shipping.FirstName,
			LastName:  sub.Shipping.LastName,
			Email:     sub.Shipping.Email,
			Phone:     sub.Shipping.Phone,
			Street:    sub.Shipping.Address,
			City:      sub.Shipping.City,
			State:     sub.Shipping.State,
			Zip:       sub.Shipping.Zip,
		},
		PaymentMethod: string(sub.Payment.Method),
		PaymentLast4:  sub.Payment.Last4,
		Subtotal:      money(b.Subtotal),
		Shipping:      money(b.Shipping),
		Tax:           money(b.Tax),
		Total:         money(b.Total),
		CreatedAt:     time.Now(),
	}
	for _, li := range sub.Items {
		o.Items = append(o.Items, entity.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Category:  li.Category,
			Image:     li.Image,
			Price:     li.Price,
			Quantity:  li.Quantity,
		})
	}
	return o
}

// money rounds to cents for storage.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func payload(o *entity.Order) events.OrderPlaced {
	p := events.OrderPlaced{
		OrderNumber:   o.Number,
		SessionID:     o.SessionID,
		Email:         o.ShippingAddress.Email,
		PaymentMethod: o.PaymentMethod,
		Subtotal:      o.Subtotal,
		Shipping:      o.Shipping,
		Tax:           o.Tax,
		Total:         o.Total,
	}
	for _, it := range o.Items {
		p.Items = append(p.Items, events.OrderItem{ProductID: it.ProductID, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return p
}
