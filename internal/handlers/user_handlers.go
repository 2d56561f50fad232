package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func respondUserError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
	case errors.Is(err, services.ErrUsernameExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username already exists.", err.Error()))
	case errors.Is(err, services.ErrManagerNotAllowed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Cannot register a user with status of manager.", err.Error()))
	case errors.Is(err, services.ErrMemberForUserAbsent):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member for user not found.", err.Error()))
	case errors.Is(err, services.ErrDeleteSelf):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "You cannot delete your own account.", err.Error()))
	default:
		respondInternal(c, fallback)
	}
}

// CreateUser registers a login for an existing member.
func (h *UserHandler) CreateUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateUser: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), caller, req)
	if err != nil {
		utils.LogError(err, "CreateUser: Error from userService.CreateUser")
		respondUserError(c, err, "Failed to create user.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User created successfully", "user": user})
}

// GetUsers lists the users visible to the caller.
func (h *UserHandler) GetUsers(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	users, total, err := h.userService.GetUsers(c.Request.Context(), caller, page, limit)
	if err != nil {
		utils.LogError(err, "GetUsers: Error from userService.GetUsers")
		respondInternal(c, "Failed to fetch users.")
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUserByID handles fetching a single user by ID.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := idParam(c, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetUserByID: Error from userService.GetUserByID for ID "+id.String())
		respondUserError(c, err, "Failed to fetch user.")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser changes the username or status of a user.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "user")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateUser: Failed to bind JSON for ID "+id.String())
		utils.RespondValidationFailed(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.LogError(err, "UpdateUser: Error from userService.UpdateUser for ID "+id.String())
		respondUserError(c, err, "Failed to update user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// DeleteUser handles deleting a user.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), caller, id); err != nil {
		utils.LogError(err, "DeleteUser: Error from userService.DeleteUser for ID "+id.String())
		respondUserError(c, err, "Failed to delete user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "User deleted successfully"})
}
