package catalog

import (
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BrowseRequest is the product listing filter panel state, bound from the query string
type BrowseRequest struct {
	Search     string   `form:"search" binding:"max=200"`
	Special    string   `form:"special" binding:"omitempty,oneof=deals featured bestsellers trending"`
	MinPrice   *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice   *float64 `form:"max_price" binding:"omitempty,min=0"`
	Categories []string `form:"category"`
	Brands     []string `form:"brand"`
	MinRating  float64  `form:"min_rating" binding:"min=0,max=5"`
	Sort       string   `form:"sort" binding:"omitempty,oneof=popularity price_low price_high newest rating discount"`
	Page       int      `form:"page" binding:"min=0"`
}

// ToQuery converts the request into a domain listing query
func (r BrowseRequest) ToQuery(pageSize int) catalog.ProductQuery {
	q := catalog.ProductQuery{
		Search:     r.Search,
		Special:    catalog.SpecialFilter(r.Special),
		Categories: r.Categories,
		Brands:     r.Brands,
		MinRating:  r.MinRating,
		Sort:       catalog.ParseSortOrder(r.Sort),
		Page:       r.Page,
		PageSize:   pageSize,
	}
	if r.MinPrice != nil {
		q.MinPrice = decimal.NewFromFloat(*r.MinPrice)
	}
	if r.MaxPrice != nil {
		q.MaxPrice = decimal.NewFromFloat(*r.MaxPrice)
	}
	return q.Normalize()
}

// ProductRequest is the seller's product form
type ProductRequest struct {
	Name           string                  `json:"name" binding:"required,min=1,max=200"`
	Description    string                  `json:"description" binding:"max=5000"`
	Price          decimal.Decimal         `json:"price" binding:"required"`
	OriginalPrice  *decimal.Decimal        `json:"original_price"`
	Category       string                  `json:"category" binding:"required,max=50"`
	Brand          string                  `json:"brand" binding:"max=100"`
	Stock          int                     `json:"stock" binding:"min=0"`
	Thumbnail      string                  `json:"thumbnail" binding:"omitempty,url"`
	Images         []string                `json:"images" binding:"omitempty,dive,url"`
	Specifications []catalog.Specification `json:"specifications"`
	DeliveryDays   int                     `json:"delivery_days" binding:"min=0,max=60"`
}

func (r ProductRequest) toInput() catalog.ProductInput {
	input := catalog.ProductInput{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		Category:       r.Category,
		Brand:          r.Brand,
		Stock:          r.Stock,
		Thumbnail:      r.Thumbnail,
		Images:         r.Images,
		Specifications: r.Specifications,
		DeliveryDays:   r.DeliveryDays,
	}
	if r.OriginalPrice != nil {
		input.OriginalPrice = *r.OriginalPrice
	}
	return input
}

// CreateReviewRequest is a shopper's review submission. A zero rating means 5 stars.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"min=0,max=5"`
	Title   string `json:"title" binding:"max=200"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID               `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Price           decimal.Decimal         `json:"price"`
	OriginalPrice   decimal.Decimal         `json:"original_price"`
	DiscountPercent int                     `json:"discount_percent"`
	Thumbnail       string                  `json:"thumbnail"`
	Images          []string                `json:"images"`
	Specifications  []catalog.Specification `json:"specifications"`
	Category        string                  `json:"category"`
	Brand           string                  `json:"brand"`
	Rating          float64                 `json:"rating"`
	RatingCount     int                     `json:"rating_count"`
	Stock           int                     `json:"stock"`
	DeliveryDays    int                     `json:"delivery_days"`
	SellerEmail     string                  `json:"seller_email"`
	SellerName      string                  `json:"seller_name"`
	IsDeal          bool                    `json:"is_deal"`
	IsFeatured      bool                    `json:"is_featured"`
	IsBestseller    bool                    `json:"is_bestseller"`
	IsTrending      bool                    `json:"is_trending"`
	Status          string                  `json:"status"`
	CreatedDate     time.Time               `json:"created_date"`
	UpdatedDate     time.Time               `json:"updated_date"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	specs := p.Specifications
	if specs == nil {
		specs = []catalog.Specification{}
	}
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.EffectiveOriginalPrice(),
		DiscountPercent: p.EffectiveDiscountPercent(),
		Thumbnail:       p.PrimaryImage(),
		Images:          images,
		Specifications:  specs,
		Category:        p.Category,
		Brand:           p.Brand,
		Rating:          p.Rating,
		RatingCount:     p.RatingCount,
		Stock:           p.Stock,
		DeliveryDays:    p.DeliveryDays,
		SellerEmail:     p.SellerEmail,
		SellerName:      p.SellerName,
		IsDeal:          p.IsDeal,
		IsFeatured:      p.IsFeatured,
		IsBestseller:    p.IsBestseller,
		IsTrending:      p.IsTrending,
		Status:          string(p.Status),
		CreatedDate:     p.CreatedAt,
		UpdatedDate:     p.UpdatedAt,
	}
}

// ToProductResponses converts a list of products
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

// ListingResponse is one "load more" window of the product list
type ListingResponse struct {
	Items    []ProductResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	HasMore  bool              `json:"has_more"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image"`
	SortOrder int       `json:"sort_order"`
}

// HomeResponse feeds the home page
type HomeResponse struct {
	Categories  []CategoryResponse `json:"categories"`
	Deals       []ProductResponse  `json:"deals"`
	Featured    []ProductResponse  `json:"featured"`
	Bestsellers []ProductResponse  `json:"bestsellers"`
	Trending    []ProductResponse  `json:"trending"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	UserEmail          string    `json:"user_email"`
	UserName           string    `json:"user_name"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	CreatedDate        time.Time `json:"created_date"`
}

// ToReviewResponse converts a domain review
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		UserEmail:          r.UserEmail,
		UserName:           r.UserName,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		CreatedDate:        r.CreatedAt,
	}
}

// ProductDetailResponse feeds the product page
type ProductDetailResponse struct {
	Product           ProductResponse   `json:"product"`
	DiscountPercent   int               `json:"discount_percent"`
	EstimatedDelivery time.Time         `json:"estimated_delivery"`
	Reviews           []ReviewResponse  `json:"reviews"`
	Related           []ProductResponse `json:"related"`
}

// BrandsResponse lists the brand filter options
type BrandsResponse struct {
	Category string   `json:"category,omitempty"`
	Brands   []string `json:"brands"`
}

// SellerOrderResponse is an order shown on the seller dashboard
type SellerOrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserEmail   string          `json:"user_email"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	CreatedDate time.Time       `json:"created_date"`
}

func toSellerOrderResponse(o *trade.Order) SellerOrderResponse {
	return SellerOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserEmail:   o.UserEmail,
		Total:       o.Total,
		Status:      string(o.Status),
		ItemCount:   o.ItemCount(),
		CreatedDate: o.CreatedAt,
	}
}

// SellerDashboardResponse feeds the seller dashboard
type SellerDashboardResponse struct {
	Products         []ProductResponse     `json:"products"`
	Orders           []SellerOrderResponse `json:"orders"`
	Revenue          decimal.Decimal       `json:"revenue"`
	TotalProducts    int                   `json:"total_products"`
	ApprovedProducts int                   `json:"approved_products"`
	PendingProducts  int                   `json:"pending_products"`
	TotalOrders      int                   `json:"total_orders"`
}
