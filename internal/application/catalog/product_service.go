package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/cache"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const serviceName = "catalog"

// CatalogSnapshot serves the approved catalog from a cache
type CatalogSnapshot interface {
	ApprovedProducts(ctx context.Context, load cache.ProductLoader) ([]*catalog.Product, error)
}

// ProductService serves the storefront pages: home, listing and product detail
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	reviewRepo   catalog.ReviewRepository
	userRepo     identity.UserRepository
	txManager    shared.TxManager
	snapshot     CatalogSnapshot
	pageSize     int
	now          func() time.Time
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	reviewRepo catalog.ReviewRepository,
	userRepo identity.UserRepository,
	txManager shared.TxManager,
	logger *zap.Logger,
) *ProductService {
	if txManager == nil {
		txManager = shared.NoopTxManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		pageSize:     catalog.DefaultPageSize,
		now:          time.Now,
		logger:       logger,
	}
}

// SetCatalogSnapshot serves listings from a cached approved catalog
func (s *ProductService) SetCatalogSnapshot(snapshot CatalogSnapshot) {
	s.snapshot = snapshot
}

// SetPageSize overrides the "load more" window size
func (s *ProductService) SetPageSize(size int) {
	if size > 0 {
		s.pageSize = size
	}
}

// LoadApproved reads the newest approved products straight from the repository.
// It is the loader behind the catalog cache.
func (s *ProductService) LoadApproved(ctx context.Context) ([]*catalog.Product, error) {
	q := shared.NewQuery(nil).
		Where("status", string(catalog.ProductStatusApproved)).
		Order("-created_date").
		Take(catalog.ListingSourceLimit)
	return s.productRepo.Find(ctx, q)
}

// approved returns the approved catalog, newest first
func (s *ProductService) approved(ctx context.Context) ([]*catalog.Product, error) {
	if s.snapshot == nil {
		return s.LoadApproved(ctx)
	}
	return s.snapshot.ApprovedProducts(ctx, s.LoadApproved)
}

// Browse filters, sorts and paginates the approved catalog
func (s *ProductService) Browse(ctx context.Context, req BrowseRequest) (resp *ListingResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Browse",
		attribute.String("sort", req.Sort),
		attribute.Int("page", req.Page),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	products, err := s.approved(ctx)
	if err != nil {
		return nil, err
	}

	listing := req.ToQuery(s.pageSize).Apply(products)
	span.SetAttributes(attribute.Int("result.total", listing.Total))

	return &ListingResponse{
		Items:    ToProductResponses(listing.Items),
		Total:    listing.Total,
		Page:     listing.Page,
		PageSize: listing.PageSize,
		HasMore:  listing.HasMore,
	}, nil
}

// Home builds the home page rails from the newest approved products
func (s *ProductService) Home(ctx context.Context) (resp *HomeResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Home")
	defer func() { telemetry.EndSpan(span, err) }()

	products, err := s.approved(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > catalog.HomeCandidateLimit {
		products = products[:catalog.HomeCandidateLimit]
	}
	sections := catalog.BuildHomeSections(products)

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &HomeResponse{
		Categories:  categories,
		Deals:       ToProductResponses(sections.Deals),
		Featured:    ToProductResponses(sections.Featured),
		Bestsellers: ToProductResponses(sections.Bestsellers),
		Trending:    ToProductResponses(sections.Trending),
	}, nil
}

// Detail returns the product page. Products still in moderation are only
// visible to their seller and to admins.
func (s *ProductService) Detail(ctx context.Context, viewer identity.Principal, id uuid.UUID) (resp *ProductDetailResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Detail", attribute.String("product.id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsApproved() && !viewer.IsAdmin() && !product.OwnedBy(viewer.Email) {
		return nil, shared.ErrNotFound
	}

	reviews, err := s.reviewRepo.Find(ctx, shared.NewQuery(nil).
		Where("product_id", product.ID).
		Order("-created_date").
		Take(catalog.ReviewPageSize))
	if err != nil {
		return nil, err
	}
	reviewResponses := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		reviewResponses[i] = ToReviewResponse(r)
	}

	related, err := s.related(ctx, product)
	if err != nil {
		// the page still renders without the related rail
		s.logger.Warn("Failed to load related products",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
		related = nil
	}

	return &ProductDetailResponse{
		Product:           ToProductResponse(product),
		DiscountPercent:   product.EffectiveDiscountPercent(),
		EstimatedDelivery: product.EstimatedDelivery(s.now()),
		Reviews:           reviewResponses,
		Related:           ToProductResponses(related),
	}, nil
}

// related picks approved products of the same category, best rated first
func (s *ProductService) related(ctx context.Context, product *catalog.Product) ([]*catalog.Product, error) {
	if product.Category == "" {
		return nil, nil
	}
	products, err := s.approved(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*catalog.Product, 0, catalog.RelatedLimit)
	for _, p := range products {
		if p.ID != product.ID && p.Category == product.Category && p.IsApproved() {
			out = append(out, p)
		}
	}
	catalog.SortProducts(out, catalog.SortRating)
	if len(out) > catalog.RelatedLimit {
		out = out[:catalog.RelatedLimit]
	}
	return out, nil
}

// AddReview records a review and folds its rating into the product average
func (s *ProductService) AddReview(ctx context.Context, reviewer identity.Principal, productID uuid.UUID, req CreateReviewRequest) (resp *ReviewResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "AddReview", attribute.String("product.id", productID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if reviewer.IsAnonymous() {
		return nil, shared.ErrUnauthorized
	}

	name := reviewer.Email
	if s.userRepo != nil {
		user, err := s.userRepo.FindByEmail(ctx, reviewer.Email)
		switch {
		case err == nil:
			name = user.FullName
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	var review *catalog.Review
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if !product.IsApproved() {
			return shared.ErrNotFound
		}

		review, err = catalog.NewReview(product.ID, reviewer.Email, name, req.Rating, req.Title, req.Comment)
		if err != nil {
			return err
		}
		if err := s.reviewRepo.Save(ctx, review); err != nil {
			return err
		}

		product.RecordReview(review.Rating)
		return s.productRepo.Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Review added",
		zap.String("product_id", productID.String()),
		zap.Int("rating", review.Rating),
	)

	out := ToReviewResponse(review)
	return &out, nil
}

// Categories lists the categories in display order. The default taxonomy is
// served when none have been configured.
func (s *ProductService) Categories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		out := make([]CategoryResponse, len(catalog.DefaultCategories))
		for i, c := range catalog.DefaultCategories {
			out[i] = CategoryResponse{Name: c.Name, Slug: c.Slug, Image: c.Image, SortOrder: i}
		}
		return out, nil
	}

	sort.SliceStable(categories, func(i, j int) bool { return categories[i].SortOrder < categories[j].SortOrder })
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, Image: c.Image, SortOrder: c.SortOrder}
	}
	return out, nil
}

// Brands returns the brand filter options, narrowed to a category when given
func (s *ProductService) Brands(_ context.Context, category string) BrandsResponse {
	category = strings.ToLower(strings.TrimSpace(category))
	if brands, ok := catalog.BrandsByCategory[category]; ok {
		return BrandsResponse{Category: category, Brands: brands}
	}
	return BrandsResponse{Brands: catalog.FilterBrands}
}
