package identity

import (
	"context"
	"errors"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/auth"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const serviceName = "identity"

// Authentication errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrEmailTaken         = shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	ErrInvalidToken       = shared.NewDomainError("UNAUTHORIZED", "Invalid or expired token")
)

// AuthService handles registration, sign-in and the account profile
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	now        func() time.Time
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. A nil blacklist
// disables logout revocation.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		now:        time.Now,
		logger:     logger,
	}
}

// Register creates a customer account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (resp *AuthResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Register")
	defer func() { telemetry.EndSpan(span, err) }()

	exists, err := s.userRepo.ExistsByEmail(ctx, identity.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user, err := identity.NewUser(req.Email, req.FullName, req.Password)
	if err != nil {
		return nil, err
	}
	user.RecordLogin(s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Login verifies the password and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (resp *AuthResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, serviceName, "Login")
	defer func() { telemetry.EndSpan(span, err) }()

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Login for unknown account")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Login with wrong password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	user.RecordLogin(s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("Failed to record login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return s.issue(user)
}

// Refresh issues a new pair from a refresh token. The role is re-read from
// the account so promotions take effect on the next refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	// one-shot refresh tokens; only the caller that burns the token gets a pair
	if s.blacklist != nil {
		first, err := s.blacklist.RevokeOnce(ctx, claims.ID, claims.RemainingTTL())
		if err != nil {
			return nil, err
		}
		if !first {
			return nil, ErrInvalidToken
		}
	}
	return s.issue(user)
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, access *auth.Claims, refreshToken string) error {
	if s.blacklist == nil {
		return nil
	}
	if access != nil {
		if err := s.blacklist.Revoke(ctx, access.ID, access.RemainingTTL()); err != nil {
			return err
		}
	}
	if refreshToken == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		// an unusable refresh token needs no revocation
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL())
}

// IsRevoked reports whether a token ID was revoked by logout or refresh
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.isRevoked(ctx, jti)
}

// Me returns the signed-in account
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := ToUserResponse(user)
	return &out, nil
}

// UpdateProfile edits the name and phone of the signed-in account
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.FullName, req.Phone); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	out := ToUserResponse(user)
	return &out, nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResponse, error) {
	tokens, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: ToUserResponse(user), Tokens: tokens}, nil
}

func (s *AuthService) isRevoked(ctx context.Context, jti string) (bool, error) {
	if s.blacklist == nil || jti == "" {
		return false, nil
	}
	return s.blacklist.IsRevoked(ctx, jti)
}
