// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/layoutforge/backend/internal/models"
)

// UploadHandler handles layout file operations
type UploadHandler interface {
	HandleUploadFile(c echo.Context) error
	HandleGetRecentFiles(c echo.Context) error
	HandleGetFile(c echo.Context) error
	HandleDeleteFile(c echo.Context) error
	HandleRenameFile(c echo.Context) error
}

// LayoutHandler handles parse session operations
type LayoutHandler interface {
	HandleParseLayout(c echo.Context) error
	HandleGetLayout(c echo.Context) error
	HandleGetKeys(c echo.Context) error
	HandleGetKeysMsgpack(c echo.Context) error
	HandleGetRaw(c echo.Context) error
	HandleFormatLayout(c echo.Context) error
	HandleSessionKeepAlive(c echo.Context) error
}

// PresetHandler handles bundled preset operations
type PresetHandler interface {
	HandleListPresets(c echo.Context) error
	HandleLoadPreset(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// SessionManager defines the interface for session management
// This allows mocking in tests
type SessionManager interface {
	Start(fileID string, raw string) (*models.LayoutSession, error)
	Get(id string) (*models.LayoutSession, bool)
	Keyboard(id string) (*models.Keyboard, bool)
	Raw(id string) (string, bool)
	Touch(id string) bool
}
