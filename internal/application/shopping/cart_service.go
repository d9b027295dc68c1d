package shopping

import (
	"context"
	"errors"
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const serviceName = "shopping"

// ErrCartItemNotFound is returned for unknown lines and lines of other users
var ErrCartItemNotFound = shared.NewDomainError("NOT_FOUND", "Cart item not found")

// CartService handles the cart page: lines, saved-for-later and coupons
type CartService struct {
	cartRepo    shopping.CartRepository
	productRepo catalog.ProductRepository
	couponRepo  shopping.CouponRepository
	policy      shopping.DeliveryPolicy
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	couponRepo shopping.CouponRepository,
	policy shopping.DeliveryPolicy,
	logger *zap.Logger,
) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		policy:      policy,
		logger:      logger,
	}
}

// View returns the cart, the saved-for-later list and the totals. An unusable
// coupon code is reported in CouponError and left out of the totals.
func (s *CartService) View(ctx context.Context, userEmail, couponCode string) (resp *CartResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "ViewCart")
	defer func() { telemetry.EndSpan(span, err) }()

	active, err := s.cartRepo.FindByUser(ctx, userEmail, false)
	if err != nil {
		return nil, err
	}
	saved, err := s.cartRepo.FindByUser(ctx, userEmail, true)
	if err != nil {
		return nil, err
	}

	resp = &CartResponse{
		Items:      ToCartItemResponses(active),
		SavedItems: ToCartItemResponses(saved),
	}

	var coupon *shopping.Coupon
	if strings.TrimSpace(couponCode) != "" {
		coupon, err = ResolveCoupon(ctx, s.couponRepo, couponCode, shopping.ComputeTotals(active, nil, s.policy))
		if err != nil {
			if !errors.Is(err, shopping.ErrCouponNotApplicable) {
				return nil, err
			}
			resp.CouponError = err.Error()
		}
	}

	resp.Totals = ToTotalsResponse(shopping.ComputeTotals(active, coupon, s.policy))
	resp.Coupon = ToCouponResponse(coupon)
	return resp, nil
}

// ApplyCoupon validates the code against the current cart and returns the
// cart priced with it
func (s *CartService) ApplyCoupon(ctx context.Context, userEmail, code string) (*CartResponse, error) {
	active, err := s.cartRepo.FindByUser(ctx, userEmail, false)
	if err != nil {
		return nil, err
	}
	if _, err := ResolveCoupon(ctx, s.couponRepo, code, shopping.ComputeTotals(active, nil, s.policy)); err != nil {
		return nil, err
	}
	return s.View(ctx, userEmail, code)
}

// Add puts one unit of a product in the cart, bumping the quantity of an
// existing active line
func (s *CartService) Add(ctx context.Context, userEmail string, productID uuid.UUID) (resp *CartResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "AddToCart", attribute.String("product.id", productID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	existing, err := s.cartRepo.FindActiveByProduct(ctx, userEmail, productID)
	switch {
	case err == nil:
		existing.ChangeQuantity(1)
		if err := s.cartRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.IsApproved() {
			return nil, shared.ErrNotFound
		}
		item, err := shopping.NewCartItem(userEmail, shopping.SnapshotOf(product))
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.View(ctx, userEmail, "")
}

// ChangeQuantity adjusts a line by delta. A change that would drop the
// quantity below one is ignored.
func (s *CartService) ChangeQuantity(ctx context.Context, userEmail string, itemID uuid.UUID, delta int) (*CartResponse, error) {
	item, err := s.ownedItem(ctx, userEmail, itemID)
	if err != nil {
		return nil, err
	}
	if item.ChangeQuantity(delta) {
		if err := s.cartRepo.Save(ctx, item); err != nil {
			return nil, err
		}
	}
	return s.View(ctx, userEmail, "")
}

// Remove deletes a line
func (s *CartService) Remove(ctx context.Context, userEmail string, itemID uuid.UUID) (*CartResponse, error) {
	item, err := s.ownedItem(ctx, userEmail, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
		return nil, err
	}
	return s.View(ctx, userEmail, "")
}

// SaveForLater moves a line to the saved list
func (s *CartService) SaveForLater(ctx context.Context, userEmail string, itemID uuid.UUID) (*CartResponse, error) {
	item, err := s.ownedItem(ctx, userEmail, itemID)
	if err != nil {
		return nil, err
	}
	item.SaveForLater()
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return s.View(ctx, userEmail, "")
}

// MoveToCart moves a saved line back to the active cart
func (s *CartService) MoveToCart(ctx context.Context, userEmail string, itemID uuid.UUID) (*CartResponse, error) {
	item, err := s.ownedItem(ctx, userEmail, itemID)
	if err != nil {
		return nil, err
	}
	item.MoveToCart()
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return s.View(ctx, userEmail, "")
}

func (s *CartService) ownedItem(ctx context.Context, userEmail string, itemID uuid.UUID) (*shopping.CartItem, error) {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if !item.BelongsTo(userEmail) {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

// ResolveCoupon looks up an active coupon and checks it against the cart
// subtotal. Unknown, inactive and under-threshold codes all yield
// ErrCouponNotApplicable.
func ResolveCoupon(ctx context.Context, repo shopping.CouponRepository, code string, totals shopping.Totals) (*shopping.Coupon, error) {
	code = shopping.NormalizeCouponCode(code)
	if code == "" {
		return nil, shopping.ErrCouponNotApplicable
	}
	coupon, err := repo.FindActiveByCode(ctx, code)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shopping.ErrCouponNotApplicable
	}
	if err != nil {
		return nil, err
	}
	if !coupon.Applicable(totals.Subtotal) {
		return nil, shopping.ErrCouponNotApplicable
	}
	return coupon, nil
}
