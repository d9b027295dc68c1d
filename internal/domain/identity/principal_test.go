package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrincipal(t *testing.T) {
	p := NewPrincipal(uuid.New(), " Admin@Shop.COM ", RoleAdmin)
	assert.Equal(t, "admin@shop.com", p.Email)
	assert.True(t, p.IsAdmin())
	assert.True(t, p.IsSeller())
	assert.False(t, p.IsAnonymous())

	seller := NewPrincipal(uuid.New(), "s@shop.com", RoleSeller)
	assert.False(t, seller.IsAdmin())
	assert.True(t, seller.IsSeller())

	assert.True(t, Principal{}.IsAnonymous())
}
