package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/middleware"
	"church_backend/internal/models"
	"church_backend/internal/reports"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultPageSize = 10

// currentCaller reads the authenticated identity, answering 401 when it is absent.
func currentCaller(c *gin.Context) (models.AuthUser, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.LogError(errors.New("caller not found in context"), "Handler: missing caller identity")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing caller identity in context"))
	}
	return caller, ok
}

// idParam parses the :id path segment as a UUID, answering 400 when it is malformed.
func idParam(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+entity+" ID format.", err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) (page, limit int) {
	return utils.PositiveIntOrDefault(c.Query("page"), 1), utils.PositiveIntOrDefault(c.Query("limit"), defaultPageSize)
}

// respondScopeError maps the errors shared by every church-scoped service.
// It reports false when err is none of them.
func respondScopeError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrChurchOutOfScope):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Church is outside your scope.", err.Error()))
	case errors.Is(err, services.ErrChurchNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Church not found.", err.Error()))
	case errors.Is(err, services.ErrChurchRequired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A church is required.", err.Error()))
	case errors.Is(err, reports.ErrInvalidMonth):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid month, please use YYYY-MM.", err.Error()))
	default:
		return false
	}
	return true
}

func respondInternal(c *gin.Context, message string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, message, "Internal error"))
}
