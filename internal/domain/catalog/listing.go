package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortOrder is one of the product list orderings
type SortOrder string

const (
	SortPopularity SortOrder = "popularity"
	SortPriceLow   SortOrder = "price_low"
	SortPriceHigh  SortOrder = "price_high"
	SortNewest     SortOrder = "newest"
	SortRating     SortOrder = "rating"
	SortDiscount   SortOrder = "discount"
)

// SortOrders lists every supported ordering
var SortOrders = []SortOrder{SortPopularity, SortPriceLow, SortPriceHigh, SortNewest, SortRating, SortDiscount}

// ParseSortOrder maps a request value to a SortOrder; unknown values mean popularity
func ParseSortOrder(s string) SortOrder {
	for _, o := range SortOrders {
		if string(o) == s {
			return o
		}
	}
	return SortPopularity
}

// SpecialFilter selects one of the merchandising flags
type SpecialFilter string

const (
	SpecialNone        SpecialFilter = ""
	SpecialDeals       SpecialFilter = "deals"
	SpecialFeatured    SpecialFilter = "featured"
	SpecialBestsellers SpecialFilter = "bestsellers"
	SpecialTrending    SpecialFilter = "trending"
)

// Matches reports whether a product carries the flag
func (f SpecialFilter) Matches(p *Product) bool {
	switch f {
	case SpecialDeals:
		return p.IsDeal
	case SpecialFeatured:
		return p.IsFeatured
	case SpecialBestsellers:
		return p.IsBestseller
	case SpecialTrending:
		return p.IsTrending
	}
	return true
}

// Listing defaults
const (
	DefaultPageSize    = 24
	HomeSectionSize    = 8
	HomeCandidateLimit = 300
	ListingSourceLimit = 1000
	RelatedLimit       = 8
	ReviewPageSize     = 20
)

// DefaultMaxPrice is the upper bound of the price slider
var DefaultMaxPrice = decimal.NewFromInt(100000)

// ProductQuery holds the shopper's filter panel state
type ProductQuery struct {
	Search     string
	Special    SpecialFilter
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	Categories []string
	Brands     []string
	MinRating  float64
	Sort       SortOrder
	Page       int
	PageSize   int
}

// Listing is one "load more" window over the filtered products
type Listing struct {
	Items    []*Product
	Total    int
	Page     int
	PageSize int
	HasMore  bool
}

// Normalize fills defaults: price range [0, 100000], page 1, 24 per page
func (q ProductQuery) Normalize() ProductQuery {
	if q.MinPrice.IsNegative() {
		q.MinPrice = decimal.Zero
	}
	if q.MaxPrice.IsZero() {
		q.MaxPrice = DefaultMaxPrice
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.Sort == "" {
		q.Sort = SortPopularity
	}
	q.Search = strings.ToLower(strings.TrimSpace(q.Search))
	return q
}

// Matches applies every filter stage to a single product
func (q ProductQuery) Matches(p *Product) bool {
	if q.Search != "" &&
		!strings.Contains(strings.ToLower(p.Name), q.Search) &&
		!strings.Contains(strings.ToLower(p.Description), q.Search) &&
		!strings.Contains(strings.ToLower(p.Brand), q.Search) {
		return false
	}
	if !q.Special.Matches(p) {
		return false
	}
	if p.Price.LessThan(q.MinPrice) || p.Price.GreaterThan(q.MaxPrice) {
		return false
	}
	if len(q.Categories) > 0 && !containsFold(q.Categories, p.Category) {
		return false
	}
	if len(q.Brands) > 0 && !containsFold(q.Brands, p.Brand) {
		return false
	}
	if q.MinRating > 0 && p.Rating < q.MinRating {
		return false
	}
	return true
}

// Apply filters, sorts and windows the products. The input slice is not modified.
func (q ProductQuery) Apply(products []*Product) Listing {
	q = q.Normalize()

	filtered := make([]*Product, 0, len(products))
	for _, p := range products {
		if q.Matches(p) {
			filtered = append(filtered, p)
		}
	}

	SortProducts(filtered, q.Sort)

	visible := q.Page * q.PageSize
	if visible > len(filtered) {
		visible = len(filtered)
	}
	return Listing{
		Items:    filtered[:visible],
		Total:    len(filtered),
		Page:     q.Page,
		PageSize: q.PageSize,
		HasMore:  visible < len(filtered),
	}
}

// SortProducts sorts in place. Equal keys keep their relative order.
func SortProducts(products []*Product, order SortOrder) {
	var less func(a, b *Product) bool
	switch order {
	case SortPriceLow:
		less = func(a, b *Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b *Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortNewest:
		less = func(a, b *Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortRating:
		less = func(a, b *Product) bool { return a.Rating > b.Rating }
	case SortDiscount:
		less = func(a, b *Product) bool { return a.EffectiveDiscountPercent() > b.EffectiveDiscountPercent() }
	default:
		less = func(a, b *Product) bool { return a.RatingCount > b.RatingCount }
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// HomeSections groups the merchandising rails of the home page
type HomeSections struct {
	Deals       []*Product
	Featured    []*Product
	Bestsellers []*Product
	Trending    []*Product
}

// BuildHomeSections takes the first eight approved products carrying each flag
func BuildHomeSections(products []*Product) HomeSections {
	pick := func(f SpecialFilter) []*Product {
		out := make([]*Product, 0, HomeSectionSize)
		for _, p := range products {
			if len(out) == HomeSectionSize {
				break
			}
			if p.IsApproved() && f.Matches(p) {
				out = append(out, p)
			}
		}
		return out
	}
	return HomeSections{
		Deals:       pick(SpecialDeals),
		Featured:    pick(SpecialFeatured),
		Bestsellers: pick(SpecialBestsellers),
		Trending:    pick(SpecialTrending),
	}
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
