package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member service.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: ms}
}

func respondMemberError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
	case errors.Is(err, services.ErrMemberForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Member belongs to a church outside your scope.", err.Error()))
	case respondScopeError(c, err):
	default:
		respondInternal(c, fallback)
	}
}

// CreateMember handles the registration of a new member.
func (h *MemberHandler) CreateMember(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req services.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMember: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), caller, req)
	if err != nil {
		utils.LogError(err, "CreateMember: Error from memberService.CreateMember")
		respondMemberError(c, err, "Failed to create member.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Member created successfully", "member": member})
}

// GetMembers lists the members visible to the caller.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var q services.MemberListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.LogError(err, "GetMembers: Failed to bind query")
		utils.RespondValidationFailed(c, err)
		return
	}
	q.Page, q.Limit = pageParams(c)

	members, total, err := h.memberService.GetMembers(c.Request.Context(), caller, q)
	if err != nil {
		utils.LogError(err, "GetMembers: Error from memberService.GetMembers")
		respondInternal(c, "Failed to fetch members.")
		return
	}
	if members == nil {
		members = []models.Member{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  members,
		"total": total,
		"page":  q.Page,
		"limit": q.Limit,
	})
}

// GetMemberByID handles fetching a single member by ID.
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "member")
	if !ok {
		return
	}

	member, err := h.memberService.GetMemberByID(c.Request.Context(), caller, id)
	if err != nil {
		utils.LogError(err, "GetMemberByID: Error from memberService.GetMemberByID for ID "+id.String())
		respondMemberError(c, err, "Failed to fetch member.")
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateMember handles updating a member.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "member")
	if !ok {
		return
	}

	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateMember: Failed to bind JSON for ID "+id.String())
		utils.RespondValidationFailed(c, err)
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.LogError(err, "UpdateMember: Error from memberService.UpdateMember for ID "+id.String())
		respondMemberError(c, err, "Failed to update member.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Member updated successfully", "member": member})
}

// DeleteMember handles deleting a member together with any login linked to it.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "member")
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(c.Request.Context(), caller, id); err != nil {
		utils.LogError(err, "DeleteMember: Error from memberService.DeleteMember for ID "+id.String())
		respondMemberError(c, err, "Failed to delete member.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Member removed successfully"})
}
