package http

import (
	"io"
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/wolhaven/atelier/internal/domain"
	"github.com/wolhaven/atelier/internal/dto"
)

type UploadHandler struct {
	uploads domain.UploadService
}

func NewUploadHandler(uploads domain.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

func (h *UploadHandler) RegisterRoutes(engine *ginext.Engine, admin ginext.HandlerFunc) {
	engine.POST("/api/upload", admin, h.Upload)
}

// Upload POST /api/upload
func (h *UploadHandler) Upload(c *ginext.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "failed to open uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "failed to read uploaded file"})
		return
	}

	result, err := h.uploads.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapUploadToResponse(result))
}
