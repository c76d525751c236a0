package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"whisperbox.backend/internal/domain/entities"
	"whisperbox.backend/internal/interfaces/http/middleware"
	"whisperbox.backend/internal/interfaces/http/response"
	"whisperbox.backend/internal/usecases"
)

// MessageHandler serves the public intake endpoint and the owner-facing
// mailbox operations.
type MessageHandler struct {
	intakeUsecase  *usecases.IntakeUsecase
	mailboxUsecase *usecases.MailboxUsecase
}

func NewMessageHandler(intakeUsecase *usecases.IntakeUsecase, mailboxUsecase *usecases.MailboxUsecase) *MessageHandler {
	return &MessageHandler{intakeUsecase: intakeUsecase, mailboxUsecase: mailboxUsecase}
}

// SendMessage accepts an anonymous message for the named recipient. No
// authentication: anyone holding the link can send.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var input entities.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.intakeUsecase.Send(c.Request.Context(), input.Username, input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Message sent successfully", msg)
}

// GetMessages lists the authenticated owner's messages, newest first.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	messages, err := h.mailboxUsecase.ListMessages(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Messages retrieved successfully", gin.H{"messages": messages})
}

// DeleteMessage removes one of the owner's messages.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	messageID, err := uuid.Parse(c.Param("messageid"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	if err := h.mailboxUsecase.DeleteMessage(c.Request.Context(), userID, messageID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Message deleted successfully", nil)
}

// UpdateAcceptMessages flips the owner's acceptance gate.
func (h *MessageHandler) UpdateAcceptMessages(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input entities.AcceptMessagesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.mailboxUsecase.SetAcceptingMessages(c.Request.Context(), userID, *input.AcceptMessages); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Message acceptance status updated", gin.H{"isAcceptingMessages": *input.AcceptMessages})
}

// GetAcceptMessages reports whether the named user accepts messages.
// Public: senders check it before composing.
func (h *MessageHandler) GetAcceptMessages(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Fail(c, http.StatusBadRequest, "Query parameter username is required")
		return
	}

	accepting, err := h.mailboxUsecase.AcceptingStatus(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Acceptance status retrieved", gin.H{"isAcceptingMessages": accepting})
}
