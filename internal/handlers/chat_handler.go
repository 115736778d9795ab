package handlers

import (
	"firewatch/internal/models"
	"firewatch/internal/services"
	"firewatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request models.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.chatService.SendMessage(c.Request.Context(), userID, &request)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Message sent", response)
}

func (h *ChatHandler) GetConversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	conversationID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	messages, err := h.chatService.GetConversation(c.Request.Context(), userID, conversationID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Conversation retrieved", messages)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	conversations, err := h.chatService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Conversations retrieved", conversations)
}
