package handlers

import (
	"io"
	"net/http"

	"evervoice_backend/internal/dto"
	"evervoice_backend/internal/middleware"
	"evervoice_backend/internal/services"
	"evervoice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService services.VideoService
}

func NewVideoHandler(videoService services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

func (h *VideoHandler) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/video", middleware.AuthMiddleware())
	{
		group.POST("/generate", h.Generate)
		group.POST("/generate-from-audio", h.GenerateFromAudio)
		group.POST("/upload-photo", h.UploadPhoto)
		group.GET("/status/:jobId", h.Status)
	}
}

func (h *VideoHandler) Generate(c *gin.Context) {
	var req dto.GenerateVideoRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.videoService.Generate(c.Request.Context(), middleware.UserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VideoHandler) GenerateFromAudio(c *gin.Context) {
	var req dto.GenerateFromAudioRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.videoService.GenerateFromAudio(c.Request.Context(), middleware.UserID(c), req.AudioURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VideoHandler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.NewBadRequestError("A portrait photo file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, apperrors.InternalError(err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.videoService.UploadPhoto(c.Request.Context(), middleware.UserID(c), data, contentType, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VideoHandler) Status(c *gin.Context) {
	resp, err := h.videoService.Status(c.Request.Context(), middleware.UserID(c), c.Param("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
