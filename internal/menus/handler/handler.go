package handler

import (
	"net/http"

	"machikado_backend/internal/menus/service"
	"machikado_backend/internal/menus/transport"
	"machikado_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the menu listing endpoint.
type Handler struct {
	svc *service.Service
}

// New creates the menus handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ByGenre returns the genre's menu grouped by category. An optional
// ?search= query narrows items by name and suppresses the featured group.
func (h *Handler) ByGenre(c *gin.Context) {
	genre := c.Param("genre")

	var q transport.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	groups, err := h.svc.CategoryMenus(c.Request.Context(), genre, q.Search)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Data(c, groups)
}

// UploadImage stores a menu image for the genre. Expects a multipart form
// with the file under the "image" field.
func (h *Handler) UploadImage(c *gin.Context) {
	genre := c.Param("genre")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "image file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid image file", nil)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	uploaded, err := h.svc.UploadImage(
		c.Request.Context(),
		genre,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, httpkit.DataResponse{Data: uploaded})
}
