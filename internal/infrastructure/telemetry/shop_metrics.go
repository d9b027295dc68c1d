package telemetry

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"go.opentelemetry.io/otel/metric"
)

// ShopMetrics turns domain events into business metrics. It subscribes to
// the event bus like any other handler.
type ShopMetrics struct {
	ordersPlaced  *Counter
	orderRevenue  *FloatCounter
	orderValue    *Histogram
	statusChanges *Counter
	moderation    *Counter
}

// NewShopMetrics creates the instruments on meter
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	m := &ShopMetrics{}
	var err error
	if m.ordersPlaced, err = NewCounter(meter, "shop_orders_placed_total", "Orders placed at checkout", "{orders}"); err != nil {
		return nil, err
	}
	if m.orderRevenue, err = NewFloatCounter(meter, "shop_order_revenue_total", "Sum of placed order totals", "INR"); err != nil {
		return nil, err
	}
	if m.orderValue, err = NewHistogram(meter, "shop_order_value", "Distribution of order totals", "INR", OrderValueBuckets...); err != nil {
		return nil, err
	}
	if m.statusChanges, err = NewCounter(meter, "shop_order_status_changes_total", "Order status transitions", "{transitions}"); err != nil {
		return nil, err
	}
	if m.moderation, err = NewCounter(meter, "shop_product_events_total", "Product submissions and moderation decisions", "{events}"); err != nil {
		return nil, err
	}
	return m, nil
}

// Handle implements shared.EventHandler
func (m *ShopMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		total := e.Total.InexactFloat64()
		method := AttrPaymentMethod.String(string(e.PaymentMethod))
		m.ordersPlaced.Inc(ctx, method)
		m.orderRevenue.Add(ctx, total, method)
		m.orderValue.Record(ctx, total, method)
	case *trade.OrderStatusChangedEvent:
		m.statusChanges.Inc(ctx, AttrOrderStatus.String(string(e.To)))
	case *catalog.ProductEvent:
		m.moderation.Inc(ctx, AttrEventType.String(e.EventType()), AttrCategory.String(e.Category))
	}
	return nil
}

// EventTypes implements shared.EventHandler
func (m *ShopMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderStatusChanged,
		catalog.EventTypeProductSubmitted,
		catalog.EventTypeProductApproved,
		catalog.EventTypeProductRejected,
		catalog.EventTypeProductDeleted,
	}
}
