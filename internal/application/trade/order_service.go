package trade

import (
	"context"
	"errors"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Order list windows
const (
	OrderHistoryLimit = 50
	RecentOrderLimit  = 5
)

// ErrOrderNotFound is returned for unknown orders and orders of other users
var ErrOrderNotFound = shared.NewDomainError("NOT_FOUND", "Order not found")

// OrderService serves the order history, detail and tracking pages
type OrderService struct {
	orderRepo      trade.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orderRepo: orderRepo, logger: logger}
}

// SetEventPublisher sets the event publisher for status change events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListMine returns the user's newest orders
func (s *OrderService) ListMine(ctx context.Context, userEmail string) ([]OrderResponse, error) {
	return s.list(ctx, userEmail, OrderHistoryLimit)
}

// Recent returns the handful of orders shown on the account dashboard
func (s *OrderService) Recent(ctx context.Context, userEmail string) ([]OrderResponse, error) {
	return s.list(ctx, userEmail, RecentOrderLimit)
}

func (s *OrderService) list(ctx context.Context, userEmail string, limit int) ([]OrderResponse, error) {
	orders, err := s.orderRepo.Find(ctx, shared.NewQuery(nil).
		Where("user_email", identity.NormalizeEmail(userEmail)).
		Order("-created_date").
		Take(limit))
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Get returns one order. Admins may read any order.
func (s *OrderService) Get(ctx context.Context, viewer identity.Principal, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.visibleOrder(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(order)
	return &out, nil
}

// Track returns the tracking line of an order
func (s *OrderService) Track(ctx context.Context, viewer identity.Principal, id uuid.UUID) (*TrackingResponse, error) {
	order, err := s.visibleOrder(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	out := toTrackingResponse(order)
	return &out, nil
}

// Cancel cancels one of the user's orders before it ships
func (s *OrderService) Cancel(ctx context.Context, userEmail string, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, "CancelOrder", userEmail, id, (*trade.Order).Cancel)
}

// RequestReturn returns one of the user's delivered orders
func (s *OrderService) RequestReturn(ctx context.Context, userEmail string, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, "ReturnOrder", userEmail, id, (*trade.Order).RequestReturn)
}

func (s *OrderService) transition(ctx context.Context, op, userEmail string, id uuid.UUID, apply func(*trade.Order) error) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, op, attribute.String("order.id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	order, err := s.ownedOrder(ctx, userEmail, id)
	if err != nil {
		return nil, err
	}
	if err := apply(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	PublishOrderEvents(ctx, s.eventPublisher, order, s.logger)

	s.logger.Info("Order status changed by shopper",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)
	out := ToOrderResponse(order)
	return &out, nil
}

func (s *OrderService) visibleOrder(ctx context.Context, viewer identity.Principal, id uuid.UUID) (*trade.Order, error) {
	if viewer.IsAdmin() {
		order, err := s.orderRepo.FindByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return order, err
	}
	return s.ownedOrder(ctx, viewer.Email, id)
}

func (s *OrderService) ownedOrder(ctx context.Context, userEmail string, id uuid.UUID) (*trade.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if !order.BelongsTo(userEmail) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// PublishOrderEvents drains the order's pending events to the publisher.
// Failures are logged; the order change is already committed.
func PublishOrderEvents(ctx context.Context, publisher shared.EventPublisher, order *trade.Order, logger *zap.Logger) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}
