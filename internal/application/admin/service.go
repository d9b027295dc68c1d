package admin

import (
	"context"
	"errors"
	"strings"

	appcatalog "github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	appidentity "github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	apptrade "github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const serviceName = "admin"

// Overview windows, newest first
const (
	UserWindow    = 100
	ProductWindow = 200
	OrderWindow   = 200
	SellerWindow  = 100
)

// Service backs the admin panel: platform overview, moderation and order status
type Service struct {
	userRepo       identity.UserRepository
	productRepo    catalog.ProductRepository
	orderRepo      trade.OrderRepository
	sellerRepo     catalog.SellerRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new admin Service
func NewService(
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	orderRepo trade.OrderRepository,
	sellerRepo catalog.SellerRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		sellerRepo:  sellerRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for moderation and order events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Overview loads the newest users, products, orders and sellers and
// aggregates the dashboard figures over those windows
func (s *Service) Overview(ctx context.Context) (resp *OverviewResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Overview")
	defer func() { telemetry.EndSpan(span, err) }()

	newest := func(limit int) shared.Query {
		return shared.NewQuery(nil).Order("-created_date").Take(limit)
	}

	users, err := s.userRepo.Find(ctx, newest(UserWindow))
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.Find(ctx, newest(ProductWindow))
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Find(ctx, newest(OrderWindow))
	if err != nil {
		return nil, err
	}
	sellers, err := s.sellerRepo.Find(ctx, newest(SellerWindow))
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.Total)
	}

	var pending []*catalog.Product
	for _, p := range products {
		if p.Status == catalog.ProductStatusPending {
			pending = append(pending, p)
		}
	}

	userResponses := make([]appidentity.UserResponse, len(users))
	for i, u := range users {
		userResponses[i] = appidentity.ToUserResponse(u)
	}

	return &OverviewResponse{
		TotalUsers:      len(users),
		TotalProducts:   len(products),
		TotalOrders:     len(orders),
		TotalSellers:    len(sellers),
		Revenue:         revenue,
		Users:           userResponses,
		Products:        appcatalog.ToProductResponses(products),
		PendingProducts: appcatalog.ToProductResponses(pending),
		Orders:          apptrade.ToOrderResponses(orders),
		Sellers:         toSellerResponses(sellers),
		Categories:      CategoryHistogram(products),
		Statuses:        StatusHistogram(orders),
	}, nil
}

// ApproveProduct publishes a product in the storefront
func (s *Service) ApproveProduct(ctx context.Context, id uuid.UUID) (*appcatalog.ProductResponse, error) {
	return s.moderate(ctx, "ApproveProduct", id, (*catalog.Product).Approve)
}

// RejectProduct hides a product from the storefront
func (s *Service) RejectProduct(ctx context.Context, id uuid.UUID) (*appcatalog.ProductResponse, error) {
	return s.moderate(ctx, "RejectProduct", id, (*catalog.Product).Reject)
}

func (s *Service) moderate(ctx context.Context, op string, id uuid.UUID, apply func(*catalog.Product) error) (resp *appcatalog.ProductResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, op, attribute.String("product.id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish product events", zap.String("product_id", id.String()), zap.Error(err))
		}
	}

	s.logger.Info("Product moderated",
		zap.String("product_id", id.String()),
		zap.String("status", string(product.Status)),
	)
	out := appcatalog.ToProductResponse(product)
	return &out, nil
}

// UpdateOrderStatus moves an order along its tracking line or cancels it
func (s *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (resp *apptrade.OrderResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "UpdateOrderStatus",
		attribute.String("order.id", id.String()),
		attribute.String("order.status", status),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	order, err := s.orderRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, apptrade.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := order.UpdateStatus(trade.OrderStatus(strings.TrimSpace(status))); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	apptrade.PublishOrderEvents(ctx, s.eventPublisher, order, s.logger)

	out := apptrade.ToOrderResponse(order)
	return &out, nil
}

var titleCase = cases.Title(language.English)

// CategoryDisplayName turns a category slug into a chart label, e.g.
// "home-furniture" becomes "Home Furniture". Blank categories are "Other".
func CategoryDisplayName(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "Other"
	}
	return titleCase.String(strings.ReplaceAll(slug, "-", " "))
}

// CategoryHistogram counts products per category in first-seen order. Name
// is the stored slug, Label its display form.
func CategoryHistogram(products []*catalog.Product) []CategoryCount {
	out := make([]CategoryCount, 0)
	index := make(map[string]int)
	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			name = "Other"
		}
		if i, ok := index[name]; ok {
			out[i].Count++
			continue
		}
		index[name] = len(out)
		out = append(out, CategoryCount{Name: name, Label: CategoryDisplayName(name), Count: 1})
	}
	return out
}

// StatusHistogram counts orders per status in first-seen order
func StatusHistogram(orders []*trade.Order) []StatusCount {
	out := make([]StatusCount, 0)
	index := make(map[string]int)
	for _, o := range orders {
		name := string(o.Status)
		if name == "" {
			name = "unknown"
		}
		if i, ok := index[name]; ok {
			out[i].Value++
			continue
		}
		index[name] = len(out)
		out = append(out, StatusCount{Name: name, Value: 1})
	}
	return out
}
