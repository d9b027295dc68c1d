package catalog

// DefaultCategories is the category strip shown on the home page, in display order
var DefaultCategories = []struct {
	Name  string
	Slug  string
	Image string
}{
	{"Mobiles", "mobiles", "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=100&h=100&fit=crop"},
	{"Electronics", "electronics", "https://images.unsplash.com/photo-1498049794561-7780e7231661?w=100&h=100&fit=crop"},
	{"Fashion", "fashion", "https://images.unsplash.com/photo-1445205170230-053b83016050?w=100&h=100&fit=crop"},
	{"Home", "home-furniture", "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=100&h=100&fit=crop"},
	{"Appliances", "appliances", "https://images.unsplash.com/photo-1556909114-44e3e70034e2?w=100&h=100&fit=crop"},
	{"Beauty", "beauty", "https://images.unsplash.com/photo-1596462502278-27bfdc403348?w=100&h=100&fit=crop"},
	{"Toys", "toys", "https://images.unsplash.com/photo-1558060370-d644479cb6f7?w=100&h=100&fit=crop"},
	{"Grocery", "grocery", "https://images.unsplash.com/photo-1542838132-92c53300491e?w=100&h=100&fit=crop"},
}

// FilterBrands is the brand list offered in the product filter panel
var FilterBrands = []string{"Samsung", "Apple", "Nike", "Sony", "LG", "Adidas", "Puma", "HP", "Dell", "Xiaomi"}

// BrandsByCategory lists the brands stocked per category
var BrandsByCategory = map[string][]string{
	"electronics":    {"Sony", "Samsung", "LG", "Panasonic", "Philips"},
	"mobiles":        {"Apple", "Samsung", "Xiaomi", "OnePlus", "Motorola"},
	"fashion":        {"Nike", "Adidas", "Puma", "Zara", "H&M"},
	"home-furniture": {"IKEA", "Godrej", "Sleepwell", "Urban Ladder", "Pepperfry"},
	"appliances":     {"Whirlpool", "LG", "Samsung", "Bosch", "IFB"},
	"beauty":         {"L'Oreal", "Maybelline", "MAC", "Lakme", "Nivea"},
	"grocery":        {"Nestle", "Cadbury", "Amul", "Britannia", "Haldirams"},
	"toys":           {"Lego", "Hot Wheels", "Barbie", "Fisher-Price", "Nerf"},
}
