package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

var adjectives = []string{
	"Premium", "Pro", "Ultra", "Smart", "Classic", "Luxury",
	"Advanced", "High-Performance", "Essential", "Wireless", "Portable",
}

var nounsByCategory = map[string][]string{
	"electronics":    {"Headphones", "Speaker", "TV", "Monitor", "Camera", "Tablet"},
	"mobiles":        {"Smartphone", "Pro Max", "Fold", "Ultra", "Lite"},
	"fashion":        {"Sneakers", "T-Shirt", "Jacket", "Jeans", "Watch", "Backpack"},
	"home-furniture": {"Sofa", "Dining Table", "Bed", "Chair", "Bookshelf", "Lamp"},
	"appliances":     {"Refrigerator", "Washing Machine", "Microwave", "Air Conditioner", "Vacuum Cleaner"},
	"beauty":         {"Face Wash", "Moisturizer", "Perfume", "Lipstick", "Sunscreen"},
	"grocery":        {"Coffee", "Tea", "Chocolates", "Almonds", "Honey"},
	"toys":           {"Action Figure", "Puzzle", "Board Game", "Doll", "RC Car"},
}

// Flag probabilities for generated products
const (
	dealChance       = 0.2
	featuredChance   = 0.1
	bestsellerChance = 0.15
	trendingChance   = 0.15
)

// SampleCoupons are created once so checkout can be exercised end to end
var SampleCoupons = []struct {
	Code        string
	Percent     int64
	MinOrder    int64
	MaxDiscount int64
}{
	{"WELCOME10", 10, 0, 200},
	{"SAVE20", 20, 1000, 500},
	{"BIGDEAL30", 30, 5000, 3000},
}

// Generator produces storefront fixtures from a seeded faker
type Generator struct {
	faker      *gofakeit.Faker
	categories []string
	seller     *identity.User
}

// NewGenerator creates a generator. Seed 0 picks a random seed.
func NewGenerator(seed uint64, seller *identity.User) *Generator {
	categories := make([]string, len(catalog.DefaultCategories))
	for i, c := range catalog.DefaultCategories {
		categories[i] = c.Slug
	}
	return &Generator{faker: gofakeit.New(seed), categories: categories, seller: seller}
}

// Product builds one approved product; index keeps thumbnails distinct
func (g *Generator) Product(index int) (*catalog.Product, error) {
	f := g.faker
	category := g.categories[f.IntRange(0, len(g.categories)-1)]
	brands := catalog.BrandsByCategory[category]
	nouns := nounsByCategory[category]

	brand := brands[f.IntRange(0, len(brands)-1)]
	name := fmt.Sprintf("%s %s %s %d", brand,
		adjectives[f.IntRange(0, len(adjectives)-1)],
		nouns[f.IntRange(0, len(nouns)-1)],
		f.IntRange(100, 9999))

	original := f.IntRange(500, 50000)
	discount := f.IntRange(5, 50)
	price := int64(math.Round(float64(original) * (1 - float64(discount)/100)))

	imageTopic := category
	if category == "home-furniture" {
		imageTopic = "furniture"
	}

	p, err := catalog.NewProduct(g.seller.Email, g.seller.FullName, catalog.ProductInput{
		Name: name,
		Description: fmt.Sprintf("Experience the best quality with the %s. %s",
			name, f.Sentence(12)),
		Price:         decimal.NewFromInt(price),
		OriginalPrice: decimal.NewFromInt(int64(original)),
		Category:      category,
		Brand:         brand,
		Stock:         f.IntRange(0, 500),
		Thumbnail:     fmt.Sprintf("https://loremflickr.com/500/500/%s?random=%d", imageTopic, index),
	})
	if err != nil {
		return nil, err
	}

	p.Rating = math.Round((3+f.Float64Range(0, 2))*10) / 10
	p.RatingCount = f.IntRange(10, 5000)
	p.IsDeal = f.Float64() < dealChance
	p.IsFeatured = f.Float64() < featuredChance
	p.IsBestseller = f.Float64() < bestsellerChance
	p.IsTrending = f.Float64() < trendingChance
	if err := p.Approve(); err != nil {
		return nil, err
	}
	p.ClearDomainEvents()
	return p, nil
}

// Products builds n products split into batches of at most size
func (g *Generator) Products(n, size int) ([][]*catalog.Product, error) {
	if size <= 0 {
		size = n
	}
	var batches [][]*catalog.Product
	for start := 0; start < n; start += size {
		batch := make([]*catalog.Product, 0, min(size, n-start))
		for i := start; i < start+size && i < n; i++ {
			p, err := g.Product(i)
			if err != nil {
				return nil, fmt.Errorf("product %d: %w", i, err)
			}
			batch = append(batch, p)
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// Customer builds a customer account with one default home address
func (g *Generator) Customer(password string) (*identity.User, *identity.Address, error) {
	f := g.faker
	person := f.Person()

	email := fmt.Sprintf("%s.%s.%d@example.com", emailPart(person.FirstName), emailPart(person.LastName), f.IntRange(1, 9999))
	user, err := identity.NewUser(email, person.FirstName+" "+person.LastName, password)
	if err != nil {
		return nil, nil, err
	}
	addr, err := identity.NewAddress(email, identity.AddressInput{
		Name:         user.FullName,
		Phone:        f.Numerify("9#########"),
		AddressLine1: f.Street(),
		City:         f.City(),
		State:        f.State(),
		Pincode:      f.Numerify("######"),
		Type:         identity.AddressTypeHome,
		IsDefault:    true,
	})
	if err != nil {
		return nil, nil, err
	}
	return user, addr, nil
}

// Coupons builds the sample coupons
func Coupons() ([]*shopping.Coupon, error) {
	out := make([]*shopping.Coupon, 0, len(SampleCoupons))
	for _, c := range SampleCoupons {
		coupon, err := shopping.NewCoupon(c.Code, decimal.NewFromInt(c.Percent),
			decimal.NewFromInt(c.MinOrder), decimal.NewFromInt(c.MaxDiscount))
		if err != nil {
			return nil, err
		}
		out = append(out, coupon)
	}
	return out, nil
}

// emailPart lowercases s and keeps only ASCII letters and digits
func emailPart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, s)
}
