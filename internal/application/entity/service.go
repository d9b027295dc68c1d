package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appcatalog "github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const serviceName = "entity"

// ownerColumn links user-owned rows to their account
const ownerColumn = "user_email"

// MaxLimit caps the rows returned by one filter call
const MaxLimit = 1000

// Store is the generic table access the service guards
type Store interface {
	Filter(ctx context.Context, entity string, q shared.Query) ([]persistence.Row, error)
	Get(ctx context.Context, entity string, id uuid.UUID) (persistence.Row, error)
	Create(ctx context.Context, entity string, fields map[string]any) (persistence.Row, error)
	Update(ctx context.Context, entity string, id uuid.UUID, patch map[string]any) (persistence.Row, error)
	Delete(ctx context.Context, entity string, id uuid.UUID) error
}

// ProductReader loads the products cart and wishlist rows snapshot
type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// ReviewWriter records a review and folds it into the product rating
type ReviewWriter interface {
	AddReview(ctx context.Context, reviewer identity.Principal, productID uuid.UUID, req appcatalog.CreateReviewRequest) (*appcatalog.ReviewResponse, error)
}

// userOwned entities carry user_email; non-admins only see their own rows
var userOwned = map[string]bool{
	persistence.EntityCartItem:     true,
	persistence.EntityWishlistItem: true,
	persistence.EntityOrder:        true,
	persistence.EntityAddress:      true,
	persistence.EntityReview:       true,
}

// publicRead entities may be read by anyone, signed in or not
var publicRead = map[string]bool{
	persistence.EntityProduct:  true,
	persistence.EntityCategory: true,
	persistence.EntityCoupon:   true,
	persistence.EntityReview:   true,
	persistence.EntitySeller:   true,
}

// Service applies the access policy on top of the entity store
type Service struct {
	store    Store
	products ProductReader
	reviews  ReviewWriter
	logger   *zap.Logger
}

// NewService creates a new entity Service. Without products or reviews,
// non-admins cannot create cart, wishlist or review rows.
func NewService(store Store, products ProductReader, reviews ReviewWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, products: products, reviews: reviews, logger: logger}
}

// Filter returns the rows the caller may read. Non-admin reads of user-owned
// entities are pinned to the caller's rows; product reads by non-admins only
// return approved products unless the caller filters by their own listings.
func (s *Service) Filter(ctx context.Context, caller identity.Principal, entity string, q shared.Query) (rows []persistence.Row, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Filter", attribute.String("entity", entity))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	if q.Limit <= 0 || q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if caller.IsAdmin() {
		return s.store.Filter(ctx, entity, q)
	}

	switch {
	case entity == persistence.EntityReview:
		// public
	case userOwned[entity]:
		if caller.IsAnonymous() {
			return nil, shared.ErrUnauthorized
		}
		q = q.Where(ownerColumn, caller.Email)
	case entity == persistence.EntityOrderItem:
		if err := s.checkOrderItemQuery(ctx, caller, q); err != nil {
			return nil, err
		}
	case entity == persistence.EntityProduct:
		if seller, ok := q.Criteria["seller_email"].(string); !ok || caller.IsAnonymous() || identity.NormalizeEmail(seller) != caller.Email {
			q = q.Where("status", "approved")
		}
	case publicRead[entity]:
	default:
		return nil, denied(caller)
	}
	return s.store.Filter(ctx, entity, q)
}

// Create inserts a row. Non-admins may only create their own addresses,
// cart and wishlist lines and reviews; each is validated by its domain type
// and assigned to the caller.
func (s *Service) Create(ctx context.Context, caller identity.Principal, entity string, fields map[string]any) (row persistence.Row, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Create", attribute.String("entity", entity))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		row, err = s.store.Create(ctx, entity, fields)
	} else {
		row, err = s.shopperCreate(ctx, caller, entity, fields)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Entity created", zap.String("entity", entity), zap.Any("id", row["id"]))
	return row, nil
}

// Update patches a row the caller may write
func (s *Service) Update(ctx context.Context, caller identity.Principal, entity string, id uuid.UUID, patch map[string]any) (row persistence.Row, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Update", attribute.String("entity", entity))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return s.store.Update(ctx, entity, id, patch)
	}
	return s.shopperUpdate(ctx, caller, entity, id, patch)
}

// Delete removes a row the caller may write
func (s *Service) Delete(ctx context.Context, caller identity.Principal, entity string, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Delete", attribute.String("entity", entity))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := checkEntity(entity); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		if !shopperDeletes[entity] {
			return denied(caller)
		}
		if _, err := s.ownedRow(ctx, caller, entity, id); err != nil {
			return err
		}
	}
	return s.store.Delete(ctx, entity, id)
}

// ownedRow loads one of the caller's own rows of a user-owned entity.
// Other users' rows are reported as missing.
func (s *Service) ownedRow(ctx context.Context, caller identity.Principal, entity string, id uuid.UUID) (persistence.Row, error) {
	if !userOwned[entity] || caller.IsAnonymous() {
		return nil, denied(caller)
	}
	row, err := s.store.Get(ctx, entity, id)
	if err != nil {
		return nil, err
	}
	owner, _ := row[ownerColumn].(string)
	if identity.NormalizeEmail(owner) != caller.Email {
		return nil, shared.ErrNotFound
	}
	return row, nil
}

// checkOrderItemQuery lets a shopper read the lines of one of their own orders
func (s *Service) checkOrderItemQuery(ctx context.Context, caller identity.Principal, q shared.Query) error {
	if caller.IsAnonymous() {
		return shared.ErrUnauthorized
	}
	raw, ok := q.Criteria["order_id"]
	if !ok {
		return shared.ErrForbidden
	}
	orderID, err := uuid.Parse(fmt.Sprint(raw))
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "order_id must be a UUID")
	}
	order, err := s.store.Get(ctx, persistence.EntityOrder, orderID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.ErrForbidden
	}
	if err != nil {
		return err
	}
	owner, _ := order[ownerColumn].(string)
	if identity.NormalizeEmail(owner) != caller.Email {
		return shared.ErrForbidden
	}
	return nil
}

func checkEntity(entity string) error {
	for _, name := range persistence.Entities() {
		if name == entity {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", persistence.ErrUnknownEntity, strings.TrimSpace(entity))
}

func denied(caller identity.Principal) error {
	if caller.IsAnonymous() {
		return shared.ErrUnauthorized
	}
	return shared.ErrForbidden
}
