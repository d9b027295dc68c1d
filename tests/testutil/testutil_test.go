package testutil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
)

func TestNewRepositories_SeedFixtures(t *testing.T) {
	repos := NewRepositories(t)
	ctx := context.Background()

	p := SeedProduct(t, repos.Products, "Phone", 100, WithCategory("mobiles"), Deal())
	got, err := repos.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "mobiles", got.Category)
	assert.True(t, got.IsDeal)
	assert.Equal(t, catalog.ProductStatusApproved, got.Status)

	u := SeedUser(t, repos.Users, "admin@shop.test", identity.RoleAdmin)
	assert.True(t, Principal(u).IsAdmin())

	c := SeedCoupon(t, repos.Coupons, "save10", 10, 100, 50)
	found, err := repos.Coupons.FindActiveByCode(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
}

func TestRecordingPublisher(t *testing.T) {
	pub := NewRecordingPublisher()
	ev := shared.NewBaseDomainEvent("Thing", "Agg", NewTestUUID("a"))

	require.NoError(t, pub.Publish(context.Background(), &ev))
	assert.Equal(t, []string{"Thing"}, pub.Types())

	pub.SetError(errors.New("down"))
	assert.Error(t, pub.Publish(context.Background(), &ev))
	assert.Len(t, pub.Events(), 2)

	pub.Reset()
	assert.Empty(t, pub.Events())
}

func TestMockEventHandler(t *testing.T) {
	h := NewMockEventHandler("Thing")
	assert.Equal(t, []string{"Thing"}, h.EventTypes())

	ev := shared.NewBaseDomainEvent("Thing", "Agg", NewTestUUID("a"))
	go func() { _ = h.Handle(context.Background(), &ev) }()
	WaitForEventCount(t, h, 1, time.Second)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("x"), NewTestUUID("x"))
	assert.NotEqual(t, NewTestUUID("x"), NewTestUUID("y"))
}

func TestPerformRequest(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})

	w := PerformRequest(t, engine, http.MethodPost, "/echo", map[string]string{"a": "b"}, nil)
	AssertSuccessResponse(t, w, http.StatusOK)
	assert.Equal(t, map[string]string{"a": "b"}, DecodeData[map[string]string](t, w))
}

func TestNewMockDB(t *testing.T) {
	db := NewMockDB(t)
	assert.NotNil(t, db.DB)
	db.ExpectationsWereMet(t)
}
