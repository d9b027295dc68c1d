package catalog

import (
	"context"
	"errors"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Seller dashboard windows
const (
	SellerProductLimit = 100
	SellerOrderWindow  = 100
)

// SellerService manages a seller's listings and dashboard
type SellerService struct {
	productRepo    catalog.ProductRepository
	sellerRepo     catalog.SellerRepository
	orderRepo      trade.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSellerService creates a new SellerService
func NewSellerService(
	productRepo catalog.ProductRepository,
	sellerRepo catalog.SellerRepository,
	orderRepo trade.OrderRepository,
	logger *zap.Logger,
) *SellerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SellerService{
		productRepo: productRepo,
		sellerRepo:  sellerRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for product moderation events
func (s *SellerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Dashboard groups the newest orders by whether they contain any of the seller's products
func (s *SellerService) Dashboard(ctx context.Context, seller identity.Principal) (resp *SellerDashboardResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "SellerDashboard", attribute.String("seller", seller.Email))
	defer func() { telemetry.EndSpan(span, err) }()

	products, err := s.productRepo.Find(ctx, shared.NewQuery(nil).
		Where("seller_email", seller.Email).
		Order("-created_date").
		Take(SellerProductLimit))
	if err != nil {
		return nil, err
	}

	owned := make(map[uuid.UUID]struct{}, len(products))
	approved, pending := 0, 0
	for _, p := range products {
		owned[p.ID] = struct{}{}
		switch p.Status {
		case catalog.ProductStatusApproved:
			approved++
		case catalog.ProductStatusPending:
			pending++
		}
	}

	recent, err := s.orderRepo.Find(ctx, shared.NewQuery(nil).Order("-created_date").Take(SellerOrderWindow))
	if err != nil {
		return nil, err
	}

	orders := make([]SellerOrderResponse, 0)
	revenue := decimal.Zero
	for _, o := range recent {
		if !o.ContainsAnyProduct(owned) {
			continue
		}
		orders = append(orders, toSellerOrderResponse(o))
		revenue = revenue.Add(o.Total)
	}

	return &SellerDashboardResponse{
		Products:         ToProductResponses(products),
		Orders:           orders,
		Revenue:          revenue,
		TotalProducts:    len(products),
		ApprovedProducts: approved,
		PendingProducts:  pending,
		TotalOrders:      len(orders),
	}, nil
}

// CreateProduct submits a new listing for moderation
func (s *SellerService) CreateProduct(ctx context.Context, seller identity.Principal, req ProductRequest) (resp *ProductResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "CreateProduct", attribute.String("seller", seller.Email))
	defer func() { telemetry.EndSpan(span, err) }()

	if !seller.IsSeller() {
		return nil, shared.ErrForbidden
	}

	storeName, err := s.storeName(ctx, seller.Email)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(seller.Email, storeName, req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	s.logger.Info("Product submitted",
		zap.String("product_id", product.ID.String()),
		zap.String("seller", seller.Email),
	)

	out := ToProductResponse(product)
	return &out, nil
}

// UpdateProduct edits a listing. Edited products go back to moderation.
func (s *SellerService) UpdateProduct(ctx context.Context, seller identity.Principal, id uuid.UUID, req ProductRequest) (resp *ProductResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "UpdateProduct", attribute.String("product.id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	product, err := s.owned(ctx, seller, id)
	if err != nil {
		return nil, err
	}
	if err := product.UpdateDetails(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	out := ToProductResponse(product)
	return &out, nil
}

// DeleteProduct removes a listing
func (s *SellerService) DeleteProduct(ctx context.Context, seller identity.Principal, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "DeleteProduct", attribute.String("product.id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	product, err := s.owned(ctx, seller, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}
	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publish(ctx, product)

	s.logger.Info("Product deleted",
		zap.String("product_id", product.ID.String()),
		zap.String("by", seller.Email),
	)
	return nil
}

// owned loads a product the caller may edit: its seller, or an admin
func (s *SellerService) owned(ctx context.Context, seller identity.Principal, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !seller.IsAdmin() && !product.OwnedBy(seller.Email) {
		return nil, shared.ErrForbidden
	}
	return product, nil
}

// storeName is the seller's registered store, or their email when unregistered
func (s *SellerService) storeName(ctx context.Context, email string) (string, error) {
	if s.sellerRepo == nil {
		return email, nil
	}
	profile, err := s.sellerRepo.FindByEmail(ctx, email)
	if errors.Is(err, shared.ErrNotFound) {
		return email, nil
	}
	if err != nil {
		return "", err
	}
	return profile.StoreName, nil
}

func (s *SellerService) publish(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish product events",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}
