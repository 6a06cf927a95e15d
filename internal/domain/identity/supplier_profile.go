package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierStatus represents the approval state of a supplier profile
type SupplierStatus string

const (
	SupplierStatusPending  SupplierStatus = "PENDING"
	SupplierStatusApproved SupplierStatus = "APPROVED"
	SupplierStatusRejected SupplierStatus = "REJECTED"
)

// IsValid checks if the status is a valid SupplierStatus
func (s SupplierStatus) IsValid() bool {
	switch s {
	case SupplierStatusPending, SupplierStatusApproved, SupplierStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of SupplierStatus
func (s SupplierStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// APPROVED and REJECTED are terminal.
func (s SupplierStatus) CanTransitionTo(target SupplierStatus) bool {
	switch s {
	case SupplierStatusPending:
		return target == SupplierStatusApproved || target == SupplierStatusRejected
	}
	return false
}

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{10,30}$`)

// SupplierProfile holds the business details a user submits to sell on
// the marketplace. One profile per user; moderation happens through the
// status state machine.
type SupplierProfile struct {
	shared.BaseEntity
	UserID          uuid.UUID
	BusinessNameEn  string
	BusinessNameAr  string
	IBAN            string
	TaxNumber       string
	Status          SupplierStatus
	RejectionReason *string
	ApprovedAt      *time.Time
}

// NewSupplierProfile creates a pending supplier profile for a user
func NewSupplierProfile(userID uuid.UUID, businessNameEn, businessNameAr, iban, taxNumber string) (*SupplierProfile, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	businessNameEn = strings.TrimSpace(businessNameEn)
	businessNameAr = strings.TrimSpace(businessNameAr)
	if businessNameEn == "" && businessNameAr == "" {
		return nil, shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name is required")
	}
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if iban != "" && !ibanPattern.MatchString(iban) {
		return nil, shared.NewDomainError("INVALID_IBAN", "IBAN format is invalid")
	}

	return &SupplierProfile{
		BaseEntity:     shared.NewBaseEntity(),
		UserID:         userID,
		BusinessNameEn: businessNameEn,
		BusinessNameAr: businessNameAr,
		IBAN:           iban,
		TaxNumber:      strings.TrimSpace(taxNumber),
		Status:         SupplierStatusPending,
	}, nil
}

// Approve moves the profile to APPROVED and stamps the approval time
func (p *SupplierProfile) Approve() error {
	if !p.Status.CanTransitionTo(SupplierStatusApproved) {
		return shared.NewDomainError("INVALID_STATE",
			"Only pending suppliers can be approved, current status: "+p.Status.String())
	}
	now := time.Now()
	p.Status = SupplierStatusApproved
	p.ApprovedAt = &now
	p.RejectionReason = nil
	p.UpdatedAt = now
	return nil
}

// Reject moves the profile to REJECTED with an optional reason
func (p *SupplierProfile) Reject(reason string) error {
	if !p.Status.CanTransitionTo(SupplierStatusRejected) {
		return shared.NewDomainError("INVALID_STATE",
			"Only pending suppliers can be rejected, current status: "+p.Status.String())
	}
	p.Status = SupplierStatusRejected
	if reason = strings.TrimSpace(reason); reason != "" {
		p.RejectionReason = &reason
	}
	p.UpdatedAt = time.Now()
	return nil
}

// IsApproved reports whether the supplier may manage catalog entries
func (p *SupplierProfile) IsApproved() bool {
	return p.Status == SupplierStatusApproved
}
