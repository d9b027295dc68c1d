package trade

import (
	"context"
	"errors"
	"strings"
	"time"

	appidentity "github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	appshopping "github.com/Bhargav2112/Flipcart-Clone/internal/application/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const serviceName = "trade"

// orderNumberAttempts bounds retries when two checkouts land on the same millisecond
const orderNumberAttempts = 3

// Checkout errors
var (
	ErrAddressRequired = shared.NewDomainError("ADDRESS_REQUIRED", "Please select an address")
	ErrEmptyCart       = shared.NewDomainError("EMPTY_CART", "Your cart is empty")
)

// CheckoutOptions tunes order placement
type CheckoutOptions struct {
	Policy       shopping.DeliveryPolicy
	NumberPrefix string
	DeliveryDays int
}

// CheckoutService drives the address, summary and payment steps and places orders
type CheckoutService struct {
	cartRepo       shopping.CartRepository
	couponRepo     shopping.CouponRepository
	addressRepo    identity.AddressRepository
	orderRepo      trade.OrderRepository
	txManager      shared.TxManager
	eventPublisher shared.EventPublisher
	opts           CheckoutOptions
	now            func() time.Time
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartRepo shopping.CartRepository,
	couponRepo shopping.CouponRepository,
	addressRepo identity.AddressRepository,
	orderRepo trade.OrderRepository,
	txManager shared.TxManager,
	opts CheckoutOptions,
	logger *zap.Logger,
) *CheckoutService {
	if txManager == nil {
		txManager = shared.NoopTxManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		cartRepo:    cartRepo,
		couponRepo:  couponRepo,
		addressRepo: addressRepo,
		orderRepo:   orderRepo,
		txManager:   txManager,
		opts:        opts,
		now:         time.Now,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for OrderPlaced events
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Summary returns the data shown across the checkout steps. An unusable
// coupon code is reported in CouponError and left out of the totals.
func (s *CheckoutService) Summary(ctx context.Context, userEmail, couponCode string) (resp *CheckoutSummaryResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "CheckoutSummary")
	defer func() { telemetry.EndSpan(span, err) }()

	addresses, err := s.addressRepo.FindByUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	lines, err := s.cartRepo.FindByUser(ctx, userEmail, false)
	if err != nil {
		return nil, err
	}

	resp = &CheckoutSummaryResponse{
		Addresses:      appidentity.ToAddressResponses(addresses),
		Items:          appshopping.ToCartItemResponses(lines),
		PaymentOptions: toPaymentOptions(trade.PaymentOptions()),
	}
	if selected := identity.SelectDefault(addresses); selected != nil {
		id := selected.ID
		resp.SelectedAddressID = &id
	}

	var coupon *shopping.Coupon
	if strings.TrimSpace(couponCode) != "" {
		coupon, err = appshopping.ResolveCoupon(ctx, s.couponRepo, couponCode, shopping.ComputeTotals(lines, nil, s.opts.Policy))
		if err != nil {
			if !errors.Is(err, shopping.ErrCouponNotApplicable) {
				return nil, err
			}
			resp.CouponError = err.Error()
		}
	}
	resp.Totals = appshopping.ToTotalsResponse(shopping.ComputeTotals(lines, coupon, s.opts.Policy))
	resp.Coupon = appshopping.ToCouponResponse(coupon)
	return resp, nil
}

// PlaceOrder snapshots the active cart and the chosen address into an order
// and clears the cart in the same transaction
func (s *CheckoutService) PlaceOrder(ctx context.Context, userEmail string, req PlaceOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "PlaceOrder",
		attribute.String("payment.method", req.PaymentMethod),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	placedAt := s.now()
	var order *trade.Order
	for attempt := 1; ; attempt++ {
		order, err = s.placeOrder(ctx, userEmail, req, placedAt)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt == orderNumberAttempts {
			return nil, err
		}
		s.logger.Warn("Order number collision, retrying", zap.Int("attempt", attempt))
		placedAt = placedAt.Add(time.Millisecond)
	}

	PublishOrderEvents(ctx, s.eventPublisher, order, s.logger)
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.String()),
	)

	out := ToOrderResponse(order)
	return &out, nil
}

func (s *CheckoutService) placeOrder(ctx context.Context, userEmail string, req PlaceOrderRequest, placedAt time.Time) (*trade.Order, error) {
	var order *trade.Order
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		address, err := s.addressRepo.FindByID(ctx, req.AddressID)
		if errors.Is(err, shared.ErrNotFound) {
			return ErrAddressRequired
		}
		if err != nil {
			return err
		}
		if !address.BelongsTo(userEmail) {
			return ErrAddressRequired
		}

		lines, err := s.cartRepo.FindByUser(ctx, userEmail, false)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var coupon *shopping.Coupon
		if strings.TrimSpace(req.CouponCode) != "" {
			coupon, err = appshopping.ResolveCoupon(ctx, s.couponRepo, req.CouponCode, shopping.ComputeTotals(lines, nil, s.opts.Policy))
			if err != nil {
				return err
			}
		}

		order, err = trade.NewOrder(trade.OrderInput{
			UserEmail:       userEmail,
			Lines:           lines,
			Coupon:          coupon,
			Policy:          s.opts.Policy,
			ShippingAddress: appidentity.ToShippingAddress(address),
			PaymentMethod:   trade.PaymentMethod(req.PaymentMethod),
			PlacedAt:        placedAt,
			NumberPrefix:    s.opts.NumberPrefix,
			DeliveryDays:    s.opts.DeliveryDays,
		})
		if err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		return s.cartRepo.DeleteByUser(ctx, userEmail, false)
	})
	return order, err
}
