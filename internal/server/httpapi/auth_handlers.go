package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

func (s *Server) register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.accounts.Register(c.Request.Context(), input.Email, input.Password, input.Name)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"email": user.Email})
}

type verifyEmailInput struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

func (s *Server) verifyEmail(c *gin.Context) {
	var input verifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.accounts.VerifyEmail(c.Request.Context(), input.Email, input.OTP); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": input.Email})
}

type emailInput struct {
	Email string `json:"email" binding:"required"`
}

func (s *Server) resendVerification(c *gin.Context) {
	var input emailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.accounts.ResendVerification(c.Request.Context(), input.Email); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "verification code sent"})
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := s.tokens.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": pair.AccessToken, "refresh": pair.RefreshToken})
}

type refreshInput struct {
	Refresh string `json:"refresh"`
}

func (s *Server) refreshToken(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"refresh": "required"})
		return
	}

	access, err := s.tokens.Refresh(c.Request.Context(), input.Refresh)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (s *Server) logout(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"refresh": "required"})
		return
	}

	if err := s.tokens.Logout(c.Request.Context(), input.Refresh); err != nil {
		// logout reports a bad token as a client error, not as an
		// authentication challenge
		c.JSON(http.StatusBadRequest, gin.H{"refresh": "token is invalid or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
}

func (s *Server) forgotPassword(c *gin.Context) {
	var input emailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.accounts.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "if the email exists, a reset link has been sent"})
}

type resetPasswordInput struct {
	UIDB64      string `json:"uidb64" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (s *Server) resetPassword(c *gin.Context) {
	var input resetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.accounts.ResetPassword(c.Request.Context(), input.UIDB64, input.Token, input.NewPassword); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "password has been reset"})
}
