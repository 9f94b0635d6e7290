package handlers

import (
	"net/http"

	"evervoice_backend/internal/dto"
	"evervoice_backend/internal/middleware"
	"evervoice_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) RegisterRoutes(api *gin.RouterGroup) {
	memory := api.Group("/memory", middleware.AuthMiddleware())
	{
		memory.PUT("/profile", h.UpsertProfile)
		memory.GET("/profile", h.GetProfile)
	}

	chat := api.Group("/chat", middleware.AuthMiddleware())
	{
		chat.POST("/send", h.Send)
		chat.GET("/quota", h.Quota)
	}
}

func (h *ChatHandler) UpsertProfile(c *gin.Context) {
	var req dto.UpsertProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.chatService.UpsertProfile(middleware.UserID(c), req.DisplayName, req.PersonalityPrompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) GetProfile(c *gin.Context) {
	resp, err := h.chatService.GetProfile(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.ChatSendRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.chatService.Send(c.Request.Context(), middleware.UserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) Quota(c *gin.Context) {
	resp, err := h.chatService.Quota(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
