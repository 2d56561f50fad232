package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GroupHandler holds the group service.
type GroupHandler struct {
	groupService services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(gs services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: gs}
}

// CreateGroup handles the creation of a new group.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateGroup: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateGroup: Error from groupService.CreateGroup")
		if errors.Is(err, services.ErrGroupNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Group name already exists.", err.Error()))
		} else {
			respondInternal(c, "Failed to create group.")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Group created successfully", "group": group})
}

// GetGroups handles fetching groups with pagination and search.
func (h *GroupHandler) GetGroups(c *gin.Context) {
	page, limit := pageParams(c)

	groups, total, err := h.groupService.GetGroups(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		utils.LogError(err, "GetGroups: Error from groupService.GetGroups")
		respondInternal(c, "Failed to fetch groups.")
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  groups,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetGroupByID handles fetching a single group by ID.
func (h *GroupHandler) GetGroupByID(c *gin.Context) {
	id, ok := idParam(c, "group")
	if !ok {
		return
	}

	group, err := h.groupService.GetGroupByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetGroupByID: Error from groupService.GetGroupByID for ID "+id.String())
		if errors.Is(err, services.ErrGroupNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Group not found.", err.Error()))
		} else {
			respondInternal(c, "Failed to fetch group.")
		}
		return
	}
	c.JSON(http.StatusOK, group)
}

// UpdateGroup handles updating a group.
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id, ok := idParam(c, "group")
	if !ok {
		return
	}

	var req services.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateGroup: Failed to bind JSON for ID "+id.String())
		utils.RespondValidationFailed(c, err)
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdateGroup: Error from groupService.UpdateGroup for ID "+id.String())
		if errors.Is(err, services.ErrGroupNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Group not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrGroupNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Group name already exists.", err.Error()))
		} else {
			respondInternal(c, "Failed to update group.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Group updated successfully", "group": group})
}

// DeleteGroup handles deleting a group.
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id, ok := idParam(c, "group")
	if !ok {
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteGroup: Error from groupService.DeleteGroup for ID "+id.String())
		if errors.Is(err, services.ErrGroupNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Group not found to delete.", err.Error()))
		} else if errors.Is(err, services.ErrGroupInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Group cannot be deleted while it still has churches.", err.Error()))
		} else {
			respondInternal(c, "Failed to delete group.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Group removed successfully"})
}
