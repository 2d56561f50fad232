package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const reportGeneratedMessage = "Report successfully generated"

// ReportHandler serves the monthly and general attendance reports.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func respondReportError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidReportQuery) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report parameters.", err.Error()))
		return
	}
	respondInternal(c, "Error generating report.")
}

// GetMonthlyReport builds the week-by-week report of one month.
// Query: month=YYYY-MM and exactly one of churchId or groupId.
func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	var q services.MonthlyReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.LogError(err, "GetMonthlyReport: Failed to bind query")
		utils.RespondValidationFailed(c, err)
		return
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), q)
	if err != nil {
		utils.LogError(err, "GetMonthlyReport: Error from reportService.MonthlyReport")
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": reportGeneratedMessage, "report": report})
}

// GetGeneralReport builds the month-by-month report of a period.
func (h *ReportHandler) GetGeneralReport(c *gin.Context) {
	var q services.GeneralReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.LogError(err, "GetGeneralReport: Failed to bind query")
		utils.RespondValidationFailed(c, err)
		return
	}

	report, err := h.reportService.GeneralReport(c.Request.Context(), q)
	if err != nil {
		utils.LogError(err, "GetGeneralReport: Error from reportService.GeneralReport")
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": reportGeneratedMessage, "report": report})
}
