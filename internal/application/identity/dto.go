package identity

import (
	"time"

	"github.com/souqbun/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone" binding:"max=50"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned after a successful register or login
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ApplySupplierRequest represents a supplier onboarding application
type ApplySupplierRequest struct {
	BusinessNameEn string `json:"business_name_en" binding:"max=200"`
	BusinessNameAr string `json:"business_name_ar" binding:"max=200"`
	IBAN           string `json:"iban" binding:"max=40"`
	TaxNumber      string `json:"tax_number" binding:"max=50"`
}

// RejectSupplierRequest carries the optional moderation reason
type RejectSupplierRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// SupplierProfileResponse represents a supplier profile in API responses
type SupplierProfileResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	BusinessNameEn  string     `json:"business_name_en,omitempty"`
	BusinessNameAr  string     `json:"business_name_ar,omitempty"`
	IBAN            string     `json:"iban,omitempty"`
	TaxNumber       string     `json:"tax_number,omitempty"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AddressRequest carries the fields for creating or updating an address
type AddressRequest struct {
	Label         string `json:"label" binding:"max=50"`
	RecipientName string `json:"recipient_name" binding:"required,min=1,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	City          string `json:"city" binding:"required,min=1,max=100"`
	District      string `json:"district" binding:"max=100"`
	Street        string `json:"street" binding:"required,min=1,max=300"`
	PostalCode    string `json:"postal_code" binding:"max=20"`
	Details       string `json:"details" binding:"max=500"`
}

// AddressResponse represents a saved address in API responses
type AddressResponse struct {
	ID            uuid.UUID `json:"id"`
	Label         string    `json:"label,omitempty"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone,omitempty"`
	City          string    `json:"city"`
	District      string    `json:"district,omitempty"`
	Street        string    `json:"street"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Details       string    `json:"details,omitempty"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToUserResponse converts a user entity to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// ToSupplierProfileResponse converts a supplier profile to its API representation
func ToSupplierProfileResponse(p *identity.SupplierProfile) SupplierProfileResponse {
	return SupplierProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		BusinessNameEn:  p.BusinessNameEn,
		BusinessNameAr:  p.BusinessNameAr,
		IBAN:            p.IBAN,
		TaxNumber:       p.TaxNumber,
		Status:          p.Status.String(),
		RejectionReason: p.RejectionReason,
		ApprovedAt:      p.ApprovedAt,
		CreatedAt:       p.CreatedAt,
	}
}

// ToAddressResponse converts an address to its API representation
func ToAddressResponse(a *identity.Address) AddressResponse {
	return AddressResponse{
		ID:            a.ID,
		Label:         a.Label,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		City:          a.City,
		District:      a.District,
		Street:        a.Street,
		PostalCode:    a.PostalCode,
		Details:       a.Details,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
	}
}

// ToAddressResponses converts a slice of addresses
func ToAddressResponses(addresses []identity.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses
}
