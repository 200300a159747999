package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"accountd/internal/server/auth"
	"accountd/internal/shared"
)

const (
	ctxUserID  = "userID"
	ctxIsAdmin = "isAdmin"
)

// authenticate requires a valid bearer access token and stashes the caller's
// identity in the request context.
func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": shared.ErrorInvalidAuthheaderFormat.Error()})
		return
	}

	claims, err := auth.ParseAccessToken(token, []byte(s.config.SecretKey))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "token is invalid or expired"})
		return
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxIsAdmin, claims.IsAdmin)
	c.Next()
}

// requireAdmin rejects non-admin callers with 403, never 404: the admin
// surface's existence is not a secret, its contents are.
func (s *Server) requireAdmin(c *gin.Context) {
	if !c.GetBool(ctxIsAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "you do not have permission to perform this action"})
		return
	}
	c.Next()
}
