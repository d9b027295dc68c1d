package identity

import (
	"context"
	"errors"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAddressNotFound is returned for unknown addresses and addresses of other users
var ErrAddressNotFound = shared.NewDomainError("NOT_FOUND", "Address not found")

// AddressService manages saved delivery addresses
type AddressService struct {
	addressRepo identity.AddressRepository
	txManager   shared.TxManager
	logger      *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo identity.AddressRepository, txManager shared.TxManager, logger *zap.Logger) *AddressService {
	if txManager == nil {
		txManager = shared.NoopTxManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressService{
		addressRepo: addressRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List returns the user's addresses
func (s *AddressService) List(ctx context.Context, userEmail string) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// Create saves a new address. The first address, or one flagged default,
// becomes the only default.
func (s *AddressService) Create(ctx context.Context, userEmail string, req AddressRequest) (*AddressResponse, error) {
	address, err := identity.NewAddress(userEmail, req.toInput())
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.addressRepo.FindByUser(ctx, address.UserEmail)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			address.IsDefault = true
		}
		if err := s.addressRepo.Save(ctx, address); err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}
		return s.markDefault(ctx, append(existing, address), address.ID)
	})
	if err != nil {
		return nil, err
	}

	out := ToAddressResponse(address)
	return &out, nil
}

// Delete removes an address. When the default goes, the next address takes over.
func (s *AddressService) Delete(ctx context.Context, userEmail string, id uuid.UUID) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		address, err := s.ownedAddress(ctx, userEmail, id)
		if err != nil {
			return err
		}
		if err := s.addressRepo.Delete(ctx, address.ID); err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}

		remaining, err := s.addressRepo.FindByUser(ctx, userEmail)
		if err != nil {
			return err
		}
		if next := identity.SelectDefault(remaining); next != nil {
			return s.markDefault(ctx, remaining, next.ID)
		}
		return nil
	})
}

// SetDefault makes the address the user's only default
func (s *AddressService) SetDefault(ctx context.Context, userEmail string, id uuid.UUID) ([]AddressResponse, error) {
	var addresses []*identity.Address
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		addresses, err = s.addressRepo.FindByUser(ctx, userEmail)
		if err != nil {
			return err
		}
		if err := s.markDefault(ctx, addresses, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ErrAddressNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

func (s *AddressService) markDefault(ctx context.Context, addresses []*identity.Address, id uuid.UUID) error {
	changed, err := identity.MarkDefault(addresses, id)
	if err != nil {
		return err
	}
	for _, a := range changed {
		if err := s.addressRepo.Save(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (s *AddressService) ownedAddress(ctx context.Context, userEmail string, id uuid.UUID) (*identity.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	if !address.BelongsTo(userEmail) {
		return nil, ErrAddressNotFound
	}
	return address, nil
}
