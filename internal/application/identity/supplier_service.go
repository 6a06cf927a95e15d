package identity

import (
	"context"
	"errors"

	"github.com/souqbun/backend/internal/domain/identity"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService handles supplier onboarding and moderation.
// Applying creates a pending profile; the account gains the supplier
// role only when an admin approves it.
type SupplierService struct {
	profileRepo identity.SupplierProfileRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(
	profileRepo identity.SupplierProfileRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *SupplierService {
	return &SupplierService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Apply submits a supplier application for the given user
func (s *SupplierService) Apply(ctx context.Context, userID uuid.UUID, req ApplySupplierRequest) (*SupplierProfileResponse, error) {
	existing, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_APPLIED", "A supplier application already exists for this account")
	}

	profile, err := identity.NewSupplierProfile(userID, req.BusinessNameEn, req.BusinessNameAr, req.IBAN, req.TaxNumber)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Supplier application submitted",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", profile.ID.String()))

	response := ToSupplierProfileResponse(profile)
	return &response, nil
}

// GetProfile returns the profile belonging to a user
func (s *SupplierService) GetProfile(ctx context.Context, userID uuid.UUID) (*SupplierProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierProfileResponse(profile)
	return &response, nil
}

// ApprovedProfile returns the user's profile only if it is approved.
// Used by the supplier back-office to gate catalog mutations.
func (s *SupplierService) ApprovedProfile(ctx context.Context, userID uuid.UUID) (*identity.SupplierProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_A_SUPPLIER", "No supplier profile for this account")
		}
		return nil, err
	}
	if !profile.IsApproved() {
		return nil, shared.NewDomainError("SUPPLIER_NOT_APPROVED", "Supplier profile is not approved")
	}
	return profile, nil
}

// List returns supplier profiles for the admin console, optionally
// filtered by status
func (s *SupplierService) List(ctx context.Context, status string, page, pageSize int) ([]SupplierProfileResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if status != "" {
		if !identity.SupplierStatus(status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown supplier status: "+status)
		}
		filter.Filters["status"] = status
	}

	profiles, total, err := s.profileRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = ToSupplierProfileResponse(&profiles[i])
	}
	return responses, total, nil
}

// Approve moves a pending application to APPROVED and promotes the
// underlying account to the supplier role
func (s *SupplierService) Approve(ctx context.Context, profileID uuid.UUID) (*SupplierProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := profile.Approve(); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	user.PromoteToSupplier()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Supplier approved",
		zap.String("profile_id", profile.ID.String()),
		zap.String("user_id", profile.UserID.String()))

	response := ToSupplierProfileResponse(profile)
	return &response, nil
}

// Reject moves a pending application to REJECTED with an optional reason
func (s *SupplierService) Reject(ctx context.Context, profileID uuid.UUID, reason string) (*SupplierProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := profile.Reject(reason); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Supplier rejected", zap.String("profile_id", profile.ID.String()))

	response := ToSupplierProfileResponse(profile)
	return &response, nil
}
