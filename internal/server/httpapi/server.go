// Package httpapi exposes the account lifecycle and profile resources over
// HTTP. Routing and binding are gin's; everything behind a handler is a
// service call.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"accountd/internal/logging"
	"accountd/internal/server/accounts"
	"accountd/internal/server/config"
	"accountd/internal/server/profiles"
	"accountd/internal/server/tokens"
)

type Server struct {
	accounts *accounts.Service
	tokens   *tokens.Service
	profiles *profiles.Service
	config   *config.Config
	logger   logging.Logger
}

func NewServer(accountSvc *accounts.Service, tokenSvc *tokens.Service, profileSvc *profiles.Service, cfg *config.Config, logger logging.Logger) *Server {
	return &Server{
		accounts: accountSvc,
		tokens:   tokenSvc,
		profiles: profileSvc,
		config:   cfg,
		logger:   logger,
	}
}

// Router builds the route tree. Exposed separately from Run so tests can
// drive it with httptest.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/verify-email", s.verifyEmail)
	authGroup.POST("/resend-verification", s.resendVerification)
	authGroup.POST("/login", s.login)
	authGroup.POST("/token/refresh", s.refreshToken)
	authGroup.POST("/logout", s.logout)
	authGroup.POST("/forgot-password", s.forgotPassword)
	authGroup.POST("/reset-password", s.resetPassword)

	profileGroup := api.Group("/profiles", s.authenticate)
	profileGroup.GET("/me", s.getOwnProfile)
	profileGroup.PATCH("/me", s.updateOwnProfile)
	profileGroup.PUT("/me", s.updateOwnProfile)
	profileGroup.DELETE("/me", s.deleteOwnProfile)

	adminGroup := profileGroup.Group("", s.requireAdmin)
	adminGroup.GET("", s.listProfiles)
	adminGroup.GET("/:id", s.getProfile)
	adminGroup.PATCH("/:id", s.updateProfile)
	adminGroup.PUT("/:id", s.updateProfile)
	adminGroup.DELETE("/:id", s.deleteProfile)

	return r
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.config.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
