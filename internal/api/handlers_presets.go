// handlers_presets.go - Bundled preset handlers
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/layoutforge/backend/internal/kle"
	"github.com/layoutforge/backend/internal/presets"
)

// PresetHandlerImpl implements the PresetHandler interface
type PresetHandlerImpl struct {
	library  *presets.Library
	sessions SessionManager
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(library *presets.Library, sessions SessionManager) PresetHandler {
	return &PresetHandlerImpl{
		library:  library,
		sessions: sessions,
	}
}

// HandleListPresets returns the bundled presets.
func (h *PresetHandlerImpl) HandleListPresets(c echo.Context) error {
	entries, err := h.library.List()
	if err != nil {
		return NewInternalError("failed to list presets", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"presets": entries,
		"count":   len(entries),
	})
}

// HandleLoadPreset parses a bundled preset into a new session.
func (h *PresetHandlerImpl) HandleLoadPreset(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Name == "" {
		return NewBadRequestError("name is required", nil)
	}

	raw, err := h.library.ReadLayout(req.Name)
	if err != nil {
		return NewNotFoundError("preset", req.Name)
	}

	session, err := h.sessions.Start("preset:"+req.Name, raw)
	if err != nil {
		var decodeErr *kle.DecodeError
		if errors.As(err, &decodeErr) {
			return NewDecodeError(decodeErr)
		}
		return NewInternalError("failed to parse preset", err)
	}

	return c.JSON(http.StatusCreated, session)
}
