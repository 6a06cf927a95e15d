package identity

import (
	"context"

	"github.com/souqbun/backend/internal/domain/identity"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AddressService manages a buyer's address book
type AddressService struct {
	addressRepo identity.AddressRepository
}

// NewAddressService creates a new address service
func NewAddressService(addressRepo identity.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// List returns the user's addresses, default first
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// Create adds an address to the user's book. The first address becomes
// the default automatically.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	address, err := identity.NewAddress(userID, req.Label, req.RecipientName, req.Phone,
		req.City, req.District, req.Street, req.PostalCode, req.Details)
	if err != nil {
		return nil, err
	}

	existing, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	address.IsDefault = len(existing) == 0

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// Update edits an address the user owns
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	if err := address.Update(req.Label, req.RecipientName, req.Phone,
		req.City, req.District, req.Street, req.PostalCode, req.Details); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// Delete removes an address the user owns. Orders keep their snapshots.
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, addressID)
}

// SetDefault marks an address the user owns as the default
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.addressRepo.SetDefault(ctx, userID, addressID)
}

func (s *AddressService) ownedAddress(ctx context.Context, userID, addressID uuid.UUID) (*identity.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if !address.IsOwnedBy(userID) {
		// Report not-found rather than forbidden so address ids cannot
		// be probed across accounts.
		return nil, shared.ErrNotFound
	}
	return address, nil
}
