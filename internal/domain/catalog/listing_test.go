package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name string, price int64, opts ...func(*Product)) *Product {
	p := &Product{
		Name:          name,
		Price:         decimal.NewFromInt(price),
		OriginalPrice: decimal.NewFromInt(price),
		Category:      "electronics",
		Status:        ProductStatusApproved,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func names(ps []*Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestProductQueryFilters(t *testing.T) {
	catalog := []*Product{
		product("Galaxy Phone", 20000, func(p *Product) { p.Brand = "Samsung"; p.Category = "mobiles"; p.Rating = 4.5; p.IsDeal = true }),
		product("Air Max", 6000, func(p *Product) { p.Brand = "Nike"; p.Category = "fashion"; p.Rating = 3.9; p.IsTrending = true }),
		product("Bravia TV", 150000, func(p *Product) { p.Brand = "Sony"; p.Rating = 4.8 }),
		product("Soundbar", 9000, func(p *Product) { p.Brand = "Sony"; p.Description = "Dolby audio for your phone calls" }),
	}

	tests := []struct {
		name  string
		query ProductQuery
		want  []string
	}{
		{"default range hides items above 100000", ProductQuery{}, []string{"Galaxy Phone", "Air Max", "Soundbar"}},
		{"search matches name description and brand", ProductQuery{Search: "PHONE"}, []string{"Galaxy Phone", "Soundbar"}},
		{"search matches brand", ProductQuery{Search: "nike"}, []string{"Air Max"}},
		{"special filter", ProductQuery{Special: SpecialDeals}, []string{"Galaxy Phone"}},
		{"price range", ProductQuery{MinPrice: decimal.NewFromInt(6000), MaxPrice: decimal.NewFromInt(9000)}, []string{"Air Max", "Soundbar"}},
		{"categories", ProductQuery{Categories: []string{"mobiles", "fashion"}}, []string{"Galaxy Phone", "Air Max"}},
		{"brands", ProductQuery{Brands: []string{"sony"}, MaxPrice: decimal.NewFromInt(200000)}, []string{"Bravia TV", "Soundbar"}},
		{"min rating treats missing as zero", ProductQuery{MinRating: 4}, []string{"Galaxy Phone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.query
			q.Sort = SortNewest // all zero timestamps, stable order is input order
			got := q.Apply(catalog)
			assert.Equal(t, tt.want, names(got.Items))
			assert.Equal(t, len(tt.want), got.Total)
		})
	}
}

func TestSortOrders(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func() []*Product {
		a := product("A", 300, func(p *Product) { p.RatingCount = 10; p.Rating = 4.1; p.OriginalPrice = decimal.NewFromInt(600) })
		b := product("B", 100, func(p *Product) { p.RatingCount = 500; p.Rating = 3.2; p.OriginalPrice = decimal.NewFromInt(110) })
		c := product("C", 200, func(p *Product) { p.RatingCount = 50; p.Rating = 4.9 })
		a.CreatedAt = base
		b.CreatedAt = base.Add(2 * time.Hour)
		c.CreatedAt = base.Add(time.Hour)
		return []*Product{a, b, c}
	}

	tests := map[SortOrder][]string{
		SortPopularity: {"B", "C", "A"},
		SortPriceLow:   {"B", "C", "A"},
		SortPriceHigh:  {"A", "C", "B"},
		SortNewest:     {"B", "C", "A"},
		SortRating:     {"C", "A", "B"},
		SortDiscount:   {"A", "B", "C"},
	}
	require.Len(t, tests, len(SortOrders))
	for order, want := range tests {
		t.Run(string(order), func(t *testing.T) {
			got := ProductQuery{Sort: order}.Apply(mk())
			assert.Equal(t, want, names(got.Items))
		})
	}

	assert.Equal(t, SortPopularity, ParseSortOrder("bogus"))
	assert.Equal(t, SortPriceHigh, ParseSortOrder("price_high"))
}

func TestLoadMoreWindow(t *testing.T) {
	products := make([]*Product, 0, 50)
	for i := 0; i < 50; i++ {
		products = append(products, product(fmt.Sprintf("P%02d", i), 100))
	}

	first := ProductQuery{}.Apply(products)
	assert.Len(t, first.Items, DefaultPageSize)
	assert.True(t, first.HasMore)
	assert.Equal(t, 50, first.Total)

	second := ProductQuery{Page: 2}.Apply(products)
	assert.Len(t, second.Items, 48)
	assert.True(t, second.HasMore)

	third := ProductQuery{Page: 3}.Apply(products)
	assert.Len(t, third.Items, 50)
	assert.False(t, third.HasMore)
}

func TestBuildHomeSections(t *testing.T) {
	var products []*Product
	for i := 0; i < 12; i++ {
		products = append(products, product(fmt.Sprintf("D%d", i), 100, func(p *Product) { p.IsDeal = true }))
	}
	products = append(products,
		product("pending", 100, func(p *Product) { p.IsFeatured = true; p.Status = ProductStatusPending }),
		product("F", 100, func(p *Product) { p.IsFeatured = true; p.IsTrending = true }),
	)

	s := BuildHomeSections(products)
	assert.Len(t, s.Deals, HomeSectionSize)
	assert.Equal(t, "D0", s.Deals[0].Name)
	assert.Equal(t, []string{"F"}, names(s.Featured))
	assert.Equal(t, []string{"F"}, names(s.Trending))
	assert.Empty(t, s.Bestsellers)
}
