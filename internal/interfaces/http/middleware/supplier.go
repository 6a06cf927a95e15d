package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/souqbun/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireApprovedSupplier gates the supplier back-office. The check
// callback resolves whether the authenticated user has an approved
// supplier profile; a token minted before approval or after rejection
// fails here even if it carries the supplier role.
func RequireApprovedSupplier(check func(ctx context.Context, userID uuid.UUID) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(GetJWTUserID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if err := check(c.Request.Context(), userID); err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				code := dto.NormalizeErrorCode(domainErr.Code)
				c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
					dto.NewErrorResponse(code, domainErr.Message))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
			return
		}
		c.Next()
	}
}
