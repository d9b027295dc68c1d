package event

import (
	"context"
	"testing"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

type mockHandler struct {
	eventTypes []string
}

func newMockHandler(eventTypes ...string) *mockHandler {
	return &mockHandler{eventTypes: eventTypes}
}

func (h *mockHandler) Handle(context.Context, shared.DomainEvent) error { return nil }

func (h *mockHandler) EventTypes() []string { return h.eventTypes }

func TestHandlerRegistry_Register(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler()
	registry.Register(handler, "ProductApproved", "ProductRejected")

	assert.Equal(t, []shared.EventHandler{handler}, registry.GetHandlers("ProductApproved"))
	assert.Equal(t, []shared.EventHandler{handler}, registry.GetHandlers("ProductRejected"))
	assert.Empty(t, registry.GetHandlers("OrderPlaced"))
}

func TestHandlerRegistry_WildcardComesLast(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := newMockHandler()
	specific := newMockHandler()

	registry.Register(wildcard)
	registry.Register(specific, "OrderPlaced")

	assert.Equal(t, []shared.EventHandler{specific, wildcard}, registry.GetHandlers("OrderPlaced"))
	assert.Equal(t, []shared.EventHandler{wildcard}, registry.GetHandlers("AnythingElse"))
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	h1 := newMockHandler()
	h2 := newMockHandler()
	wildcard := newMockHandler()

	registry.Register(h1, "OrderPlaced")
	registry.Register(h2, "OrderPlaced")
	registry.Register(wildcard)

	registry.Unregister(h1)
	registry.Unregister(wildcard)

	assert.Equal(t, []shared.EventHandler{h2}, registry.GetHandlers("OrderPlaced"))

	registry.Unregister(h2)
	assert.Empty(t, registry.GetHandlers("OrderPlaced"))
	assert.Zero(t, registry.Len())
}

func TestHandlerRegistry_LenCountsDistinctHandlers(t *testing.T) {
	registry := NewHandlerRegistry()
	multi := newMockHandler()
	registry.Register(multi, "OrderPlaced", "OrderStatusChanged")
	registry.Register(newMockHandler())

	assert.Equal(t, 2, registry.Len())
}
