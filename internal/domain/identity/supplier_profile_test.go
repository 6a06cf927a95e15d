package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingProfile(t *testing.T) *SupplierProfile {
	t.Helper()
	p, err := NewSupplierProfile(uuid.New(), "Najd Roastery", "محمصة نجد", "SA0380000000608010167519", "300012345600003")
	require.NoError(t, err)
	return p
}

func TestNewSupplierProfile(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		p := newPendingProfile(t)
		assert.Equal(t, SupplierStatusPending, p.Status)
		assert.Nil(t, p.ApprovedAt)
		assert.Nil(t, p.RejectionReason)
	})

	t.Run("requires a user", func(t *testing.T) {
		_, err := NewSupplierProfile(uuid.Nil, "Najd Roastery", "", "", "")
		assert.Error(t, err)
	})

	t.Run("requires a business name in at least one language", func(t *testing.T) {
		_, err := NewSupplierProfile(uuid.New(), "  ", "", "", "")
		assert.Error(t, err)
	})

	t.Run("normalizes and validates IBAN", func(t *testing.T) {
		p, err := NewSupplierProfile(uuid.New(), "Najd Roastery", "", "sa03 8000 0000 6080 1016 7519", "")
		require.NoError(t, err)
		assert.Equal(t, "SA0380000000608010167519", p.IBAN)

		_, err = NewSupplierProfile(uuid.New(), "Najd Roastery", "", "123", "")
		assert.Error(t, err)
	})
}

func TestSupplierStatusTransitions(t *testing.T) {
	t.Run("pending can be approved", func(t *testing.T) {
		p := newPendingProfile(t)
		require.NoError(t, p.Approve())
		assert.Equal(t, SupplierStatusApproved, p.Status)
		assert.NotNil(t, p.ApprovedAt)
		assert.True(t, p.IsApproved())
	})

	t.Run("pending can be rejected with reason", func(t *testing.T) {
		p := newPendingProfile(t)
		require.NoError(t, p.Reject("incomplete tax registration"))
		assert.Equal(t, SupplierStatusRejected, p.Status)
		require.NotNil(t, p.RejectionReason)
		assert.Equal(t, "incomplete tax registration", *p.RejectionReason)
	})

	t.Run("approved is terminal", func(t *testing.T) {
		p := newPendingProfile(t)
		require.NoError(t, p.Approve())
		assert.Error(t, p.Reject("changed my mind"))
		assert.Error(t, p.Approve())
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		p := newPendingProfile(t)
		require.NoError(t, p.Reject(""))
		assert.Nil(t, p.RejectionReason)
		assert.Error(t, p.Approve())
	})
}

func TestNewUser(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		u, err := NewUser("Buyer@Example.com", "s3cret-pass", "Aisha", RoleBuyer)
		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", u.Email)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		assert.True(t, u.CheckPassword("s3cret-pass"))
		assert.False(t, u.CheckPassword("wrong"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := NewUser("a@b.com", "short", "Aisha", RoleBuyer)
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "s3cret-pass", "Aisha", RoleBuyer)
		assert.Error(t, err)
	})

	t.Run("promotes buyer to supplier", func(t *testing.T) {
		u, err := NewUser("a@b.com", "s3cret-pass", "Aisha", RoleBuyer)
		require.NoError(t, err)
		u.PromoteToSupplier()
		assert.Equal(t, RoleSupplier, u.Role)
	})
}
