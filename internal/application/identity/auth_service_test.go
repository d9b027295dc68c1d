package identity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/auth"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/Bhargav2112/Flipcart-Clone/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (*AuthService, *auth.JWTService, *testutil.Repositories) {
	t.Helper()
	repos := testutil.NewRepositories(t)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "flipcart-test",
	})
	svc := NewAuthService(repos.Users, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	return svc, jwtService, repos
}

func TestAuthService_Register(t *testing.T) {
	svc, jwtService, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{Email: " New@Shop.test ", FullName: "Asha Rao", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "new@shop.test", resp.User.Email)
	assert.Equal(t, "customer", resp.User.Role)
	assert.Equal(t, "A", resp.User.Initial)

	claims, err := jwtService.ValidateAccessToken(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	_, err = svc.Register(ctx, RegisterRequest{Email: "new@shop.test", FullName: "Again", Password: "secret123"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, repos := newAuthService(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, repos.Users, "seller@shop.test", identity.RoleSeller)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid credentials", "seller@shop.test", testutil.TestPassword, false},
		{"email is case insensitive", "SELLER@shop.test", testutil.TestPassword, false},
		{"wrong password", "seller@shop.test", "nope-nope", true},
		{"unknown account", "ghost@shop.test", testutil.TestPassword, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, resp.User.ID)
			assert.Equal(t, "seller", resp.User.Role)
			assert.NotNil(t, resp.User.LastLoginAt)
		})
	}
}

func TestAuthService_RefreshRereadsRole(t *testing.T) {
	svc, jwtService, repos := newAuthService(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, repos.Users, "promote@shop.test", identity.RoleCustomer)

	login, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: testutil.TestPassword})
	require.NoError(t, err)

	require.NoError(t, user.AssignRole(identity.RoleSeller))
	require.NoError(t, repos.Users.Save(ctx, user))

	refreshed, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(refreshed.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "seller", claims.Role)

	// refresh tokens are single use
	_, err = svc.Refresh(ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(ctx, login.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RefreshTokenIsUsableOnce(t *testing.T) {
	svc, _, repos := newAuthService(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, repos.Users, "racer@shop.test", identity.RoleCustomer)

	login, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: testutil.TestPassword})
	require.NoError(t, err)

	const callers = 16
	var wg sync.WaitGroup
	var issued, rejected atomic.Int32
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
			switch {
			case err == nil:
				issued.Add(1)
			case errors.Is(err, ErrInvalidToken):
				rejected.Add(1)
			default:
				t.Errorf("unexpected refresh error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), issued.Load())
	assert.Equal(t, int32(callers-1), rejected.Load())
}

type unavailableBlacklist struct {
	*auth.InMemoryTokenBlacklist
}

func (unavailableBlacklist) RevokeOnce(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func TestAuthService_RefreshFailsWhenTokenCannotBeBurned(t *testing.T) {
	repos := testutil.NewRepositories(t)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "flipcart-test",
	})
	svc := NewAuthService(repos.Users, jwtService, unavailableBlacklist{auth.NewInMemoryTokenBlacklist()}, zap.NewNop())
	ctx := context.Background()
	user := testutil.SeedUser(t, repos.Users, "offline@shop.test", identity.RoleCustomer)

	login, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: testutil.TestPassword})
	require.NoError(t, err)

	resp, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAuthService_Logout(t *testing.T) {
	svc, jwtService, repos := newAuthService(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, repos.Users, "leaving@shop.test", identity.RoleCustomer)

	login, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: testutil.TestPassword})
	require.NoError(t, err)
	access, err := jwtService.ValidateAccessToken(login.Tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, access, login.Tokens.RefreshToken))

	revoked, err := svc.IsRevoked(ctx, access.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.Refresh(ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Profile(t *testing.T) {
	svc, _, repos := newAuthService(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, repos.Users, "me@shop.test", identity.RoleCustomer)

	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@shop.test", me.Email)

	updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{FullName: "Meera K", Phone: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, "Meera K", updated.FullName)
	assert.Equal(t, "9876543210", updated.Phone)

	_, err = svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Phone: "call me"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PHONE", domainErr.Code)

	_, err = svc.Me(ctx, testutil.NewTestUUID("nobody"))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
