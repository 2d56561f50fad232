package handlers

import (
	"errors"
	"net/http"
	"time"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils" // For APIError and error codes

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refreshToken"

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService  services.AuthService
	refreshTTL   time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie restricts the refresh cookie to HTTPS.
func NewAuthHandler(as services.AuthService, refreshTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: as, refreshTTL: refreshTTL, secureCookie: secureCookie}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, value, maxAge, "/", "", h.secureCookie, true)
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "LoginUser: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	authResp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "LoginUser: Error from authService.Login")
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid Credentials", err.Error()))
		} else {
			respondInternal(c, "Failed to login.")
		}
		return
	}

	h.setRefreshCookie(c, authResp.RefreshToken, int(h.refreshTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "User Logged In",
		"user":        authResp.User,
		"accessToken": authResp.AccessToken,
	})
}

// RefreshToken issues a new access token from the refresh cookie.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unauthorized", "Missing refresh token cookie"))
		return
	}

	authResp, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		utils.LogError(err, "RefreshToken: Error from authService.Refresh")
		if errors.Is(err, services.ErrInvalidRefresh) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Forbidden", err.Error()))
		} else {
			respondInternal(c, "Failed to refresh token.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user":        authResp.User,
		"accessToken": authResp.AccessToken,
	})
}

// LogoutUser revokes the stored refresh token and clears the cookie.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		utils.LogError(err, "LogoutUser: Error from authService.Logout")
		respondInternal(c, "Failed to logout.")
		return
	}
	h.setRefreshCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// GetCurrentUser returns the identity carried by the access token.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": caller})
}

// RequestPasswordReset texts a reset code to the member linked to the user.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req services.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RequestPasswordReset: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req); err != nil {
		utils.LogError(err, "RequestPasswordReset: Error from authService.RequestPasswordReset")
		switch {
		case errors.Is(err, services.ErrResetNotAllowed):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Username and phone number do not match.", err.Error()))
		case errors.Is(err, services.ErrSMSDelivery):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeBadGateway, "Failed to send SMS.", err.Error()))
		default:
			respondInternal(c, "Failed to request password reset.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "SMS successfully sent"})
}

// VerifyResetCode checks a reset code before the new password is chosen.
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req services.VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "VerifyResetCode: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	if err := h.authService.VerifyResetCode(c.Request.Context(), req); err != nil {
		utils.LogError(err, "VerifyResetCode: Error from authService.VerifyResetCode")
		if errors.Is(err, services.ErrInvalidResetCode) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid or expired code.", err.Error()))
		} else {
			respondInternal(c, "Failed to verify code.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Code verified"})
}

// ConfirmPasswordReset sets a new password with a valid reset code.
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req services.ConfirmPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ConfirmPasswordReset: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		utils.LogError(err, "ConfirmPasswordReset: Error from authService.ConfirmPasswordReset")
		if errors.Is(err, services.ErrInvalidResetCode) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid or expired code.", err.Error()))
		} else {
			respondInternal(c, "Failed to reset password.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successful"})
}
