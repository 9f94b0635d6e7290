package handlers

import (
	"io"
	"net/http"
	"strings"

	"evervoice_backend/internal/storage"
	"evervoice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored files when the local storage backend is in
// use. With S3, clients fetch presigned URLs directly and this handler is
// not registered.
type FileHandler struct {
	store storage.Storage
}

func NewFileHandler(store storage.Storage) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/files/*path", h.Serve)
}

func (h *FileHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" || strings.Contains(key, "..") {
		respondError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	reader, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		respondError(c, apperrors.ErrNotFound(err))
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
