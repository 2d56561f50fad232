package handlers

import (
	"errors"
	"net/http"

	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler holds the bulk SMS service.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(ms services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: ms}
}

// SendMessages accepts a bulk message; delivery continues after the response.
func (h *MessageHandler) SendMessages(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "SendMessages: Failed to bind JSON")
		utils.RespondValidationFailed(c, err)
		return
	}

	receipt, err := h.messageService.SendMessages(c.Request.Context(), caller, req)
	if err != nil {
		utils.LogError(err, "SendMessages: Error from messageService.SendMessages")
		switch {
		case errors.Is(err, services.ErrNoRecipients):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No recipients found.", err.Error()))
		case errors.Is(err, services.ErrMessageTarget):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Target id does not match target type.", err.Error()))
		case respondScopeError(c, err):
		default:
			respondInternal(c, "Error while sending messages.")
		}
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"success":        true,
		"message":        "Message sent successfully",
		"recipientCount": receipt.RecipientCount,
	})
}
