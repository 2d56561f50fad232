package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SpecialServiceHandler holds the special service service.
type SpecialServiceHandler struct {
	specialService services.SpecialServiceService
}

// NewSpecialServiceHandler creates a new SpecialServiceHandler.
func NewSpecialServiceHandler(ss services.SpecialServiceService) *SpecialServiceHandler {
	return &SpecialServiceHandler{specialService: ss}
}

func respondSpecialServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrSpecialServiceNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Service record not found.", err.Error()))
	case errors.Is(err, services.ErrSpecialServiceExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "This category has already been recorded for the church on this date.", err.Error()))
	case errors.Is(err, services.ErrSpecialServiceScope):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Missing required parameters.", err.Error()))
	case errors.Is(err, services.ErrAttendanceValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case respondScopeError(c, err):
	default:
		respondInternal(c, fallback)
	}
}

// CreateSpecialService records a GCK, Home Caring Fellowship or Seminar service.
func (h *SpecialServiceHandler) CreateSpecialService(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req services.CreateSpecialServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateSpecialService: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	record, err := h.specialService.CreateSpecialService(c.Request.Context(), caller, req)
	if err != nil {
		utils.LogError(err, "CreateSpecialService: Error from specialService.CreateSpecialService")
		respondSpecialServiceError(c, err, "Error saving service record.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Service record saved successfully", "service": record})
}

// GetSpecialServices pages through one category in one month.
func (h *SpecialServiceHandler) GetSpecialServices(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var q services.SpecialServiceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.LogError(err, "GetSpecialServices: Failed to bind query")
		utils.RespondValidationFailed(c, err)
		return
	}
	q.Page = utils.PositiveIntOrDefault(c.Query("page"), 1)
	q.Limit = utils.PositiveIntOrDefault(c.Query("limit"), services.DefaultSpecialServicePageSize)

	records, total, err := h.specialService.GetSpecialServices(c.Request.Context(), caller, q)
	if err != nil {
		utils.LogError(err, "GetSpecialServices: Error from specialService.GetSpecialServices")
		respondSpecialServiceError(c, err, "Error fetching service records.")
		return
	}
	if records == nil {
		records = []models.SpecialServiceRecord{}
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	c.JSON(http.StatusOK, gin.H{
		"data":       records,
		"total":      total,
		"page":       q.Page,
		"limit":      q.Limit,
		"totalPages": totalPages,
	})
}

// UpdateSpecialService handles updating a special service record.
func (h *SpecialServiceHandler) UpdateSpecialService(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "service")
	if !ok {
		return
	}

	var req services.UpdateSpecialServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateSpecialService: Failed to bind JSON for ID "+id.String())
		utils.RespondValidationFailed(c, err)
		return
	}

	record, err := h.specialService.UpdateSpecialService(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.LogError(err, "UpdateSpecialService: Error from specialService.UpdateSpecialService for ID "+id.String())
		respondSpecialServiceError(c, err, "Error updating service record.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service record updated successfully", "service": record})
}

// DeleteSpecialService handles deleting a special service record.
func (h *SpecialServiceHandler) DeleteSpecialService(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "service")
	if !ok {
		return
	}

	if err := h.specialService.DeleteSpecialService(c.Request.Context(), caller, id); err != nil {
		utils.LogError(err, "DeleteSpecialService: Error from specialService.DeleteSpecialService for ID "+id.String())
		respondSpecialServiceError(c, err, "Error deleting service record.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Service record removed successfully"})
}
