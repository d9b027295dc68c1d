package event

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"go.uber.org/zap"
)

// HandlerFunc adapts a function to shared.EventHandler
type HandlerFunc struct {
	fn    func(ctx context.Context, event shared.DomainEvent) error
	types []string
}

// NewHandlerFunc wraps fn as a handler for the given event types
func NewHandlerFunc(fn func(ctx context.Context, event shared.DomainEvent) error, eventTypes ...string) *HandlerFunc {
	return &HandlerFunc{fn: fn, types: eventTypes}
}

// Handle implements shared.EventHandler
func (h *HandlerFunc) Handle(ctx context.Context, event shared.DomainEvent) error {
	return h.fn(ctx, event)
}

// EventTypes implements shared.EventHandler
func (h *HandlerFunc) EventTypes() []string {
	return h.types
}

// Invalidator drops cached data
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// CatalogInvalidationHandler drops the approved-catalog snapshot whenever a
// product's storefront visibility may have changed
type CatalogInvalidationHandler struct {
	cache  Invalidator
	logger *zap.Logger
}

// NewCatalogInvalidationHandler creates the handler
func NewCatalogInvalidationHandler(cache Invalidator, logger *zap.Logger) *CatalogInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogInvalidationHandler{cache: cache, logger: logger}
}

// Handle implements shared.EventHandler
func (h *CatalogInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx); err != nil {
		return err
	}
	h.logger.Debug("Catalog snapshot invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("product_id", event.AggregateID().String()),
	)
	return nil
}

// EventTypes implements shared.EventHandler
func (h *CatalogInvalidationHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeProductSubmitted,
		catalog.EventTypeProductApproved,
		catalog.EventTypeProductRejected,
		catalog.EventTypeProductDeleted,
	}
}
