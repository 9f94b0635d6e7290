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

type VoiceHandler struct {
	voiceService services.VoiceService
}

func NewVoiceHandler(voiceService services.VoiceService) *VoiceHandler {
	return &VoiceHandler{voiceService: voiceService}
}

func (h *VoiceHandler) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/voice", middleware.AuthMiddleware())
	{
		group.POST("/upload-sample", h.UploadSample)
		group.POST("/generate", h.Generate)
		group.GET("/samples", h.ListSamples)
	}
}

func (h *VoiceHandler) UploadSample(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.NewBadRequestError("A voice sample file is required"))
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

	resp, err := h.voiceService.UploadSample(c.Request.Context(), middleware.UserID(c), data, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoiceHandler) Generate(c *gin.Context) {
	var req dto.GenerateVoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.voiceService.GenerateAudio(c.Request.Context(), middleware.UserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoiceHandler) ListSamples(c *gin.Context) {
	samples, err := h.voiceService.ListSamples(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"samples": samples})
}
