package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"accountd/internal/shared"
)

// writeError maps domain errors to field-scoped HTTP responses. Storage and
// transport internals never leak; anything unmapped is a plain 500.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"email": "enter a valid email address"})
	case errors.Is(err, shared.ErrorEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"email": "user with this email already exists"})
	case errors.Is(err, shared.ErrorPasswordPolicy):
		c.JSON(http.StatusBadRequest, gin.H{"password": "password must be at least 8 characters"})
	case errors.Is(err, shared.ErrorUserNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"email": "user not found"})
	case errors.Is(err, shared.ErrorNoActiveOTP):
		c.JSON(http.StatusBadRequest, gin.H{"otp": "no active otp for this user"})
	case errors.Is(err, shared.ErrorOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{"otp": "otp expired"})
	case errors.Is(err, shared.ErrorOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"otp": "invalid otp"})
	case errors.Is(err, shared.ErrorInvalidUID):
		c.JSON(http.StatusBadRequest, gin.H{"uidb64": "invalid uid"})
	case errors.Is(err, shared.ErrorInvalidOrExpiredToken):
		c.JSON(http.StatusBadRequest, gin.H{"token": "invalid or expired token"})
	case errors.Is(err, shared.ErrorAvatarTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"avatar": "avatar must not exceed 2 MiB"})
	case errors.Is(err, shared.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": shared.ErrorUnauthorized.Error()})
	case errors.Is(err, shared.ErrorInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "token is invalid or expired"})
	case errors.Is(err, shared.ErrorForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "you do not have permission to perform this action"})
	case errors.Is(err, shared.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
