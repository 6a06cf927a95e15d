package identity

import (
	"context"

	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}

// SupplierProfileRepository defines persistence operations for supplier profiles
type SupplierProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*SupplierProfile, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SupplierProfile, int64, error)
	Save(ctx context.Context, profile *SupplierProfile) error
}
