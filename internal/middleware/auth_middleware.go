package middleware

import (
	"net/http"
	"strings"

	"church_backend/internal/models"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		status := models.Status(claims.Status)
		if err != nil || !status.Valid() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Token does not carry a valid identity", ""))
			return
		}
		// Managers have no church or group; their claims carry the nil UUID.
		churchID, _ := uuid.Parse(claims.ChurchID)
		groupID, _ := uuid.Parse(claims.GroupID)

		// Set caller identity in the context for downstream handlers
		c.Set(utils.ContextUserIDKey, userID)
		c.Set(utils.ContextChurchIDKey, churchID)
		c.Set(utils.ContextGroupIDKey, groupID)
		c.Set(utils.ContextStatusKey, status)

		c.Next()
	}
}

// RequireStatus lets the request through when the caller's status ranks at least min.
func RequireStatus(min models.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Caller status not found. Ensure AuthMiddleware runs first.", ""))
			return
		}
		if caller.Status.Rank() < min.Rank() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"You do not have permission to access this resource", "requires status "+string(min)+" or above"))
			return
		}
		c.Next()
	}
}

// CallerFromContext rebuilds the identity AuthMiddleware stored on the context.
func CallerFromContext(c *gin.Context) (models.AuthUser, bool) {
	userID, ok := c.Get(utils.ContextUserIDKey)
	if !ok {
		return models.AuthUser{}, false
	}
	status, ok := c.Get(utils.ContextStatusKey)
	if !ok {
		return models.AuthUser{}, false
	}

	caller := models.AuthUser{}
	if caller.ID, ok = userID.(uuid.UUID); !ok {
		return models.AuthUser{}, false
	}
	if caller.Status, ok = status.(models.Status); !ok {
		return models.AuthUser{}, false
	}
	if v, exists := c.Get(utils.ContextChurchIDKey); exists {
		caller.ChurchID, _ = v.(uuid.UUID)
	}
	if v, exists := c.Get(utils.ContextGroupIDKey); exists {
		caller.GroupID, _ = v.(uuid.UUID)
	}
	return caller, true
}
