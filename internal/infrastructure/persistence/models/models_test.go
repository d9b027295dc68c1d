package models

import (
	"testing"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductModelJSONColumns(t *testing.T) {
	p, err := catalog.NewProduct("s@shop.in", "Shop", catalog.ProductInput{
		Name:           "Kettle",
		Price:          decimal.NewFromInt(899),
		Category:       "home",
		Images:         []string{"a.jpg", "b.jpg"},
		Specifications: []catalog.Specification{{Key: "Capacity", Value: "1.5L"}},
	})
	require.NoError(t, err)

	m := ProductModelFromDomain(p)
	assert.JSONEq(t, `["a.jpg","b.jpg"]`, m.Images)

	back := m.ToDomain()
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.Images, back.Images)
	assert.Equal(t, p.Specifications, back.Specifications)
	assert.Empty(t, back.GetDomainEvents())
}

func TestNilSlicesEncodeAsEmptyArrays(t *testing.T) {
	assert.Equal(t, "[]", encodeJSON([]string(nil)))

	var out []string
	decodeJSON("not json", &out)
	assert.Nil(t, out)
}

func TestOrderModelItemsSnapshot(t *testing.T) {
	line, err := shopping.NewCartItem("b@mail.com", shopping.ProductSnapshot{
		ProductID: uuid.New(), Name: "Mug", Price: decimal.NewFromInt(250), SellerEmail: "s@shop.in",
	})
	require.NoError(t, err)

	o, err := trade.NewOrder(trade.OrderInput{
		UserEmail:       "b@mail.com",
		Lines:           []*shopping.CartItem{line},
		Policy:          shopping.DefaultDeliveryPolicy(),
		ShippingAddress: trade.ShippingAddress{Name: "B", AddressLine1: "1 Road", City: "Goa", State: "GA", Pincode: "403001"},
		PaymentMethod:   trade.PaymentMethodCOD,
		PlacedAt:        time.Now(),
	})
	require.NoError(t, err)

	back := OrderModelFromDomain(o).ToDomain()
	require.Len(t, back.Items, 1)
	assert.Equal(t, o.Items[0].ProductID, back.Items[0].ProductID)
	assert.Equal(t, o.ID, back.Items[0].OrderID)
	assert.Equal(t, "403001", back.ShippingAddress.Pincode)
	assert.True(t, back.Total.Equal(o.Total))
}
