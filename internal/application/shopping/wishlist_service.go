package shopping

import (
	"context"
	"errors"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrWishlistItemNotFound is returned for unknown entries and entries of other users
var ErrWishlistItemNotFound = shared.NewDomainError("NOT_FOUND", "Wishlist item not found")

// WishlistService handles the wishlist page
type WishlistService struct {
	wishlistRepo shopping.WishlistRepository
	cartRepo     shopping.CartRepository
	productRepo  catalog.ProductRepository
	txManager    shared.TxManager
	logger       *zap.Logger
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(
	wishlistRepo shopping.WishlistRepository,
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	txManager shared.TxManager,
	logger *zap.Logger,
) *WishlistService {
	if txManager == nil {
		txManager = shared.NoopTxManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// List returns the user's wishlist, newest first
func (s *WishlistService) List(ctx context.Context, userEmail string) ([]WishlistItemResponse, error) {
	items, err := s.wishlistRepo.FindByUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	out := make([]WishlistItemResponse, len(items))
	for i, item := range items {
		out[i] = ToWishlistItemResponse(item)
	}
	return out, nil
}

// Count returns the number of wishlist entries, shown on the account dashboard
func (s *WishlistService) Count(ctx context.Context, userEmail string) (int64, error) {
	return s.wishlistRepo.CountByUser(ctx, userEmail)
}

// Toggle removes the product from the wishlist when present, otherwise adds it
func (s *WishlistService) Toggle(ctx context.Context, userEmail string, productID uuid.UUID) (*ToggleWishlistResponse, error) {
	existing, err := s.wishlistRepo.FindByProduct(ctx, userEmail, productID)
	if err == nil {
		if err := s.wishlistRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &ToggleWishlistResponse{InWishlist: false}, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsApproved() {
		return nil, shared.ErrNotFound
	}
	item, err := shopping.NewWishlistItem(userEmail, shopping.SnapshotOf(product))
	if err != nil {
		return nil, err
	}
	if err := s.wishlistRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	out := ToWishlistItemResponse(item)
	return &ToggleWishlistResponse{InWishlist: true, Item: &out}, nil
}

// Remove deletes a wishlist entry
func (s *WishlistService) Remove(ctx context.Context, userEmail string, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, userEmail, itemID)
	if err != nil {
		return err
	}
	return s.wishlistRepo.Delete(ctx, item.ID)
}

// MoveToCart creates a cart line from the entry and drops the entry
func (s *WishlistService) MoveToCart(ctx context.Context, userEmail string, itemID uuid.UUID) (*CartItemResponse, error) {
	var line *shopping.CartItem
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		item, err := s.ownedItem(ctx, userEmail, itemID)
		if err != nil {
			return err
		}

		line, err = s.cartRepo.FindActiveByProduct(ctx, userEmail, item.Product.ProductID)
		switch {
		case err == nil:
			line.ChangeQuantity(1)
		case errors.Is(err, shared.ErrNotFound):
			line, err = item.ToCartItem()
			if err != nil {
				return err
			}
		default:
			return err
		}

		if err := s.cartRepo.Save(ctx, line); err != nil {
			return err
		}
		return s.wishlistRepo.Delete(ctx, item.ID)
	})
	if err != nil {
		return nil, err
	}

	out := ToCartItemResponse(line)
	return &out, nil
}

func (s *WishlistService) ownedItem(ctx context.Context, userEmail string, itemID uuid.UUID) (*shopping.WishlistItem, error) {
	item, err := s.wishlistRepo.FindByID(ctx, itemID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrWishlistItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if !item.BelongsTo(userEmail) {
		return nil, ErrWishlistItemNotFound
	}
	return item, nil
}
