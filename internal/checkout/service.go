package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/stylin-backend/internal/cart"
	"github.com/angelmondragon/stylin-backend/internal/events"
	pkgcheckout "github.com/angelmondragon/stylin-backend/pkg/checkout"
	"github.com/angelmondragon/stylin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
	"github.com/google/uuid"
)

// PlaceOrderInput is the checkout form.
type PlaceOrderInput struct {
	ShippingAddress pkgcheckout.ShippingAddress
	ShippingMethod  string
	PaymentMethod   string
	CouponCode      string
}

// Buyer is the per-session state checkout reads and writes.
type Buyer struct {
	SessionID string
	Cart      *cart.Store
	Orders    *OrderBook
}

// Service exposes checkout pricing and order placement.
type Service interface {
	Quote(ctx context.Context, state cart.State, in QuoteInput) (Quote, error)
	PlaceOrder(ctx context.Context, buyer Buyer, in PlaceOrderInput) (Order, error)
	GetOrder(ctx context.Context, book *OrderBook, id uuid.UUID) (Order, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Pricer    *Pricer
	Sequence  Sequence
	Publisher events.Publisher
	Logger    *logger.Logger
	Clock     func() time.Time
}

type service struct {
	pricer    *Pricer
	sequence  Sequence
	publisher events.Publisher
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	seq := params.Sequence
	if seq == nil {
		seq = NewLocalSequence()
	}
	pub := params.Publisher
	if pub == nil {
		pub = events.NopPublisher{}
	}
	now := params.Clock
	if now == nil {
		now = time.Now
	}
	return &service{
		pricer:    params.Pricer,
		sequence:  seq,
		publisher: pub,
		logg:      params.Logger,
		now:       now,
	}, nil
}

func (s *service) Quote(_ context.Context, state cart.State, in QuoteInput) (Quote, error) {
	return s.pricer.Quote(state, in)
}

// PlaceOrder prices the cart, records the order and empties the cart. No payment is taken.
func (s *service) PlaceOrder(ctx context.Context, buyer Buyer, in PlaceOrderInput) (Order, error) {
	if buyer.Cart == nil || buyer.Orders == nil {
		return Order{}, pkgerrors.New(pkgerrors.CodeInternal, "buyer session incomplete")
	}
	addr := in.ShippingAddress.Normalize()
	if err := pkgcheckout.ValidateShippingAddress(addr); err != nil {
		return Order{}, err
	}
	payment, err := enums.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	quoteIn := QuoteInput{ShippingMethod: in.ShippingMethod, CouponCode: in.CouponCode}

	// Validate against the current cart before taking it so a bad form leaves the cart intact.
	if _, err := s.pricer.Quote(buyer.Cart.Snapshot(), quoteIn); err != nil {
		return Order{}, err
	}

	n, err := s.sequence.Next(ctx, orderSequence)
	if err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate order number")
	}

	taken := buyer.Cart.Take()
	quote, err := s.pricer.Quote(taken, quoteIn)
	if err != nil {
		return Order{}, err
	}

	order := Order{
		ID:              uuid.New(),
		Number:          formatOrderNumber(n),
		SessionID:       buyer.SessionID,
		Items:           quote.Items,
		Quote:           quote,
		ShippingAddress: addr,
		PaymentMethod:   payment,
		PlacedAt:        s.now().UTC(),
	}
	buyer.Orders.add(order)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id":     order.ID.String(),
		"order_number": order.Number,
		"total":        quote.Total.StringFixed(2),
	})
	s.logg.Info(logCtx, "order placed")

	ev, err := events.New(enums.EventOrderPlaced, buyer.SessionID, events.OrderPlacedPayload{
		OrderID:     order.ID.String(),
		OrderNumber: order.Number,
		Total:       quote.Total.StringFixed(2),
		Items:       quote.ItemCount,
	})
	if err == nil {
		err = s.publisher.Publish(ctx, ev)
	}
	if err != nil {
		s.logg.Warn(s.logg.WithField(logCtx, "error", err.Error()), "order.placed event not published")
	}
	return order, nil
}

func (s *service) GetOrder(_ context.Context, book *OrderBook, id uuid.UUID) (Order, error) {
	if book == nil {
		return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	order, ok := book.Get(id)
	if !ok {
		return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}
