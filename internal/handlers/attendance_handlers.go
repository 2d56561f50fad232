package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler holds the attendance service.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

func respondAttendanceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrAttendanceNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Attendance record not found.", err.Error()))
	case errors.Is(err, services.ErrAttendanceExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Attendance with this date exists.", err.Error()))
	case errors.Is(err, services.ErrAttendanceValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case respondScopeError(c, err):
	default:
		respondInternal(c, fallback)
	}
}

// CreateAttendance records a regular service, or the reason none was held.
func (h *AttendanceHandler) CreateAttendance(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req services.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateAttendance: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	record, err := h.attendanceService.CreateAttendance(c.Request.Context(), caller, req)
	if err != nil {
		utils.LogError(err, "CreateAttendance: Error from attendanceService.CreateAttendance")
		respondAttendanceError(c, err, "Error saving attendance.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Attendance Record successfully saved", "attendance": record})
}

// GetAttendance lists one church's records for a month.
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var q services.AttendanceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.LogError(err, "GetAttendance: Failed to bind query")
		utils.RespondValidationFailed(c, err)
		return
	}

	records, err := h.attendanceService.GetMonthlyAttendance(c.Request.Context(), caller, q)
	if err != nil {
		utils.LogError(err, "GetAttendance: Error from attendanceService.GetMonthlyAttendance")
		respondAttendanceError(c, err, "Server error while fetching attendance data.")
		return
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// UpdateAttendance handles updating an attendance record.
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "attendance")
	if !ok {
		return
	}

	var req services.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateAttendance: Failed to bind JSON for ID "+id.String())
		utils.RespondValidationFailed(c, err)
		return
	}

	record, err := h.attendanceService.UpdateAttendance(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.LogError(err, "UpdateAttendance: Error from attendanceService.UpdateAttendance for ID "+id.String())
		respondAttendanceError(c, err, "Failed to update attendance.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance Updated Successfully", "updatedAttendance": record})
}

// DeleteAttendance handles deleting an attendance record.
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "attendance")
	if !ok {
		return
	}

	if err := h.attendanceService.DeleteAttendance(c.Request.Context(), caller, id); err != nil {
		utils.LogError(err, "DeleteAttendance: Error from attendanceService.DeleteAttendance for ID "+id.String())
		respondAttendanceError(c, err, "Error while deleting attendance.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Attendance removed successfully"})
}
