package handlers

import (
	"net/http"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the KPI and trend data of the landing page.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetDashboardStats returns the dashboard for the requested status and target.
// A caller cannot ask for a dashboard wider than its own role.
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var q services.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.LogError(err, "GetDashboardStats: Failed to bind query")
		utils.RespondValidationFailed(c, err)
		return
	}
	if models.Status(q.Status).Rank() > caller.Status.Rank() {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Access denied.", "requested status "+q.Status+" is above "+string(caller.Status)))
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), q)
	if err != nil {
		utils.LogError(err, "GetDashboardStats: Error from dashboardService.Stats")
		respondInternal(c, "Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
