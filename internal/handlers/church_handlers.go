package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ChurchHandler holds the church service.
type ChurchHandler struct {
	churchService services.ChurchService
}

// NewChurchHandler creates a new ChurchHandler.
func NewChurchHandler(cs services.ChurchService) *ChurchHandler {
	return &ChurchHandler{churchService: cs}
}

func respondChurchError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrChurchNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Church not found.", err.Error()))
	case errors.Is(err, services.ErrGroupNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Group not found.", err.Error()))
	case errors.Is(err, services.ErrChurchNameExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Church with same name in the group already exists.", err.Error()))
	case errors.Is(err, services.ErrChurchInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Church cannot be deleted while it still has members.", err.Error()))
	default:
		respondInternal(c, fallback)
	}
}

// CreateChurch handles the creation of a new church.
func (h *ChurchHandler) CreateChurch(c *gin.Context) {
	var req services.CreateChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateChurch: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	church, err := h.churchService.CreateChurch(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateChurch: Error from churchService.CreateChurch")
		respondChurchError(c, err, "Failed to create church.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Church created successfully", "church": church})
}

// GetChurches lists churches; non-managers only see their own group.
func (h *ChurchHandler) GetChurches(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	churches, total, err := h.churchService.GetChurches(c.Request.Context(), caller, page, limit, c.Query("search"))
	if err != nil {
		utils.LogError(err, "GetChurches: Error from churchService.GetChurches")
		respondInternal(c, "Failed to fetch churches.")
		return
	}
	if churches == nil {
		churches = []models.Church{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  churches,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetChurchByID handles fetching a single church by ID.
func (h *ChurchHandler) GetChurchByID(c *gin.Context) {
	id, ok := idParam(c, "church")
	if !ok {
		return
	}

	church, err := h.churchService.GetChurchByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetChurchByID: Error from churchService.GetChurchByID for ID "+id.String())
		respondChurchError(c, err, "Failed to fetch church.")
		return
	}
	c.JSON(http.StatusOK, church)
}

// UpdateChurch handles updating a church.
func (h *ChurchHandler) UpdateChurch(c *gin.Context) {
	id, ok := idParam(c, "church")
	if !ok {
		return
	}

	var req services.UpdateChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateChurch: Failed to bind JSON for ID "+id.String())
		utils.RespondValidationFailed(c, err)
		return
	}

	church, err := h.churchService.UpdateChurch(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdateChurch: Error from churchService.UpdateChurch for ID "+id.String())
		respondChurchError(c, err, "Failed to update church.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Church updated successfully", "church": church})
}

// DeleteChurch handles deleting a church.
func (h *ChurchHandler) DeleteChurch(c *gin.Context) {
	id, ok := idParam(c, "church")
	if !ok {
		return
	}

	if err := h.churchService.DeleteChurch(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteChurch: Error from churchService.DeleteChurch for ID "+id.String())
		respondChurchError(c, err, "Failed to delete church.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Church removed successfully"})
}
