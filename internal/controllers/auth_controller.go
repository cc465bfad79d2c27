package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"foodshare-be/internal/middleware"
	"foodshare-be/internal/models"
	"foodshare-be/internal/service"
	"foodshare-be/internal/session"
)

type AuthController struct {
	authService service.AuthService
	sessions    session.Store
	sessionTTL  time.Duration
}

func NewAuthController(authService service.AuthService, sessions session.Store, sessionTTL time.Duration) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
	}
}

// Register handles POST /users/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if _, err := ac.authService.Register(&req); err != nil {
		respondError(c, err)
		return
	}

	// The account exists but is unverified until the emailed link is
	// followed.
	c.Redirect(http.StatusFound, "/login")
}

// Login handles POST /users/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := ac.authService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	sessionID, err := ac.sessions.Create(c.Request.Context(), session.Session{
		UserID: user.ID,
		Role:   user.Role,
	}, ac.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.SetCookie(middleware.SessionCookie, sessionID, int(ac.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout handles POST /users/logout
func (ac *AuthController) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(middleware.SessionCookie)
	if err == nil {
		if err := ac.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
			return
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// VerifyEmail handles GET /users/verify-email/:token
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	if err := ac.authService.VerifyEmail(c.Param("token")); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// ForgotPassword handles POST /users/forgot-password. The response is
// identical whether or not the email has an account.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.RequestPasswordReset(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password reset request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If an account exists for that address, a reset link has been sent"})
}

// ResetPasswordForm handles GET /users/reset-password/:token
func (ac *AuthController) ResetPasswordForm(c *gin.Context) {
	resetToken := c.Param("token")

	if err := ac.authService.ValidateResetToken(resetToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": resetToken})
}

// ResetPassword handles POST /users/reset-password/:token
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.ResetPassword(c.Param("token"), req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
