package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/storage"
)

// FileHandler serves stored uploads and thumbnails.
type FileHandler struct {
	files storage.FileStore
}

func NewFileHandler(files storage.FileStore) *FileHandler {
	return &FileHandler{files: files}
}

func (h *FileHandler) Serve(c *gin.Context) {
	name := c.Param("name")

	obj, err := h.files.Load(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeFileMissing))
			return
		}
		httperr.FromError(c, err)
		return
	}
	defer obj.Body.Close()

	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Cache-Control", "private, max-age=86400")
	http.ServeContent(c.Writer, c.Request, obj.Name, obj.ModTime, obj.Body)
}
