package admin

import (
	"time"

	appcatalog "github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	appidentity "github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	apptrade "github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryCount is one bar of the products-by-category chart
type CategoryCount struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StatusCount is one slice of the order status chart
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SellerResponse is a seller profile shown in the admin panel
type SellerResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	StoreName   string    `json:"store_name"`
	Phone       string    `json:"phone"`
	GSTNumber   string    `json:"gst_number"`
	Status      string    `json:"status"`
	CreatedDate time.Time `json:"created_date"`
}

func toSellerResponses(sellers []*catalog.Seller) []SellerResponse {
	out := make([]SellerResponse, len(sellers))
	for i, s := range sellers {
		out[i] = SellerResponse{
			ID:          s.ID,
			Email:       s.Email,
			StoreName:   s.StoreName,
			Phone:       s.Phone,
			GSTNumber:   s.GSTNumber,
			Status:      string(s.Status),
			CreatedDate: s.CreatedAt,
		}
	}
	return out
}

// OverviewResponse feeds the admin panel
type OverviewResponse struct {
	TotalUsers      int                          `json:"total_users"`
	TotalProducts   int                          `json:"total_products"`
	TotalOrders     int                          `json:"total_orders"`
	TotalSellers    int                          `json:"total_sellers"`
	Revenue         decimal.Decimal              `json:"revenue"`
	Users           []appidentity.UserResponse   `json:"users"`
	Products        []appcatalog.ProductResponse `json:"products"`
	PendingProducts []appcatalog.ProductResponse `json:"pending_products"`
	Orders          []apptrade.OrderResponse     `json:"orders"`
	Sellers         []SellerResponse             `json:"sellers"`
	Categories      []CategoryCount              `json:"categories"`
	Statuses        []StatusCount                `json:"statuses"`
}
