package identity

import (
	"context"
	"strings"
	"time"

	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Address is a saved delivery address in a buyer's address book.
// Orders copy the fields into an immutable snapshot at checkout, so
// editing or deleting an address never touches order history.
type Address struct {
	shared.BaseEntity
	UserID        uuid.UUID
	Label         string
	RecipientName string
	Phone         string
	City          string
	District      string
	Street        string
	PostalCode    string
	Details       string
	IsDefault     bool
}

// NewAddress creates an address for a user
func NewAddress(userID uuid.UUID, label, recipientName, phone, city, district, street, postalCode, details string) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	recipientName = strings.TrimSpace(recipientName)
	city = strings.TrimSpace(city)
	street = strings.TrimSpace(street)
	if recipientName == "" || city == "" || street == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Recipient, city and street are required")
	}

	return &Address{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		Label:         strings.TrimSpace(label),
		RecipientName: recipientName,
		Phone:         strings.TrimSpace(phone),
		City:          city,
		District:      strings.TrimSpace(district),
		Street:        street,
		PostalCode:    strings.TrimSpace(postalCode),
		Details:       strings.TrimSpace(details),
	}, nil
}

// Update overwrites the editable fields
func (a *Address) Update(label, recipientName, phone, city, district, street, postalCode, details string) error {
	recipientName = strings.TrimSpace(recipientName)
	city = strings.TrimSpace(city)
	street = strings.TrimSpace(street)
	if recipientName == "" || city == "" || street == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Recipient, city and street are required")
	}
	a.Label = strings.TrimSpace(label)
	a.RecipientName = recipientName
	a.Phone = strings.TrimSpace(phone)
	a.City = city
	a.District = strings.TrimSpace(district)
	a.Street = street
	a.PostalCode = strings.TrimSpace(postalCode)
	a.Details = strings.TrimSpace(details)
	a.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy reports whether the address belongs to the given user
func (a *Address) IsOwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}

// AddressRepository defines persistence operations for addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
	Save(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetDefault marks one address as default and clears the flag on
	// the user's other addresses.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
}
