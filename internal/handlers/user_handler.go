package handlers

import (
	"net/http"

	"evervoice_backend/internal/dto"
	"evervoice_backend/internal/middleware"
	"evervoice_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/users", middleware.AuthMiddleware())
	{
		group.GET("/me", h.GetMe)
		group.PUT("/me", h.UpdateProfile)
		group.PUT("/me/consent", h.UpdateConsent)
		group.DELETE("/me", h.DeleteMe)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	me, err := h.userService.GetMe(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, me)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateProfile(middleware.UserID(c), req.Nickname); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func (h *UserHandler) UpdateConsent(c *gin.Context) {
	var req dto.ConsentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateConsent(middleware.UserID(c), *req.Consent); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consent updated"})
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.userService.DeleteMe(middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
