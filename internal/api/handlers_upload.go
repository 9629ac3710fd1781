// handlers_upload.go - Layout file upload and management handlers
package api

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/layoutforge/backend/internal/storage"
)

// DefaultAllowedTypes are the file types accepted as raw layouts when the
// configuration does not name any.
const DefaultAllowedTypes = ".json,.txt,.kbd"

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	store   storage.Store
	allowed map[string]bool
}

// NewUploadHandler creates a new upload handler. allowedTypes is a
// comma-separated extension list; empty falls back to DefaultAllowedTypes.
func NewUploadHandler(store storage.Store, allowedTypes string) UploadHandler {
	if strings.TrimSpace(allowedTypes) == "" {
		allowedTypes = DefaultAllowedTypes
	}
	allowed := make(map[string]bool)
	for _, ext := range strings.Split(allowedTypes, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			allowed[ext] = true
		}
	}
	return &UploadHandlerImpl{store: store, allowed: allowed}
}

// HandleUploadFile accepts a raw layout file as multipart form data.
func (h *UploadHandlerImpl) HandleUploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("missing form field: file", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !h.allowed[ext] {
		return NewBadRequestError("unsupported file type: "+ext, nil)
	}
	if fileHeader.Size > storage.MaxLayoutFileSize {
		return NewBadRequestError("file too large", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	info, err := h.store.Save(fileHeader.Filename, src)
	if err != nil {
		return NewInternalError("failed to store file", err)
	}

	return c.JSON(http.StatusCreated, info)
}

// HandleGetRecentFiles returns the most recently uploaded files.
func (h *UploadHandlerImpl) HandleGetRecentFiles(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return NewBadRequestError("invalid limit parameter", err)
		}
		limit = n
	}

	files, err := h.store.List(limit)
	if err != nil {
		return NewInternalError("failed to list files", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"files": files,
		"count": len(files),
	})
}

// HandleGetFile returns metadata for one uploaded file.
func (h *UploadHandlerImpl) HandleGetFile(c echo.Context) error {
	id := c.Param("fileId")

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	return c.JSON(http.StatusOK, info)
}

// HandleDeleteFile removes an uploaded file.
func (h *UploadHandlerImpl) HandleDeleteFile(c echo.Context) error {
	id := c.Param("fileId")

	if err := h.store.Delete(id); err != nil {
		return NewNotFoundError("file", id)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleRenameFile updates the display name of an uploaded file.
func (h *UploadHandlerImpl) HandleRenameFile(c echo.Context) error {
	id := c.Param("fileId")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return NewBadRequestError("name must not be empty", nil)
	}

	info, err := h.store.Rename(id, req.Name)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	return c.JSON(http.StatusOK, info)
}
