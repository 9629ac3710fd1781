// routes.go - API route registration
package api

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups the handler implementations wired into the router.
type Handlers struct {
	Health  HealthHandler
	Upload  UploadHandler
	Layout  LayoutHandler
	Presets PresetHandler

	// DisableFileDeletion leaves the delete route unregistered.
	DisableFileDeletion bool
}

// RegisterRoutes mounts all API routes on the Echo instance.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.Health.HandleHealth)

	apiGroup.POST("/files/upload", h.Upload.HandleUploadFile)
	apiGroup.GET("/files/recent", h.Upload.HandleGetRecentFiles)
	apiGroup.GET("/files/:fileId", h.Upload.HandleGetFile)
	if !h.DisableFileDeletion {
		apiGroup.DELETE("/files/:fileId", h.Upload.HandleDeleteFile)
	}
	apiGroup.PUT("/files/:fileId", h.Upload.HandleRenameFile)

	apiGroup.POST("/layouts/parse", h.Layout.HandleParseLayout)
	apiGroup.POST("/layouts/format", h.Layout.HandleFormatLayout)
	apiGroup.GET("/layouts/:sessionId", h.Layout.HandleGetLayout)
	apiGroup.GET("/layouts/:sessionId/keys", h.Layout.HandleGetKeys)
	apiGroup.GET("/layouts/:sessionId/keys/msgpack", h.Layout.HandleGetKeysMsgpack)
	apiGroup.GET("/layouts/:sessionId/raw", h.Layout.HandleGetRaw)
	apiGroup.POST("/layouts/:sessionId/keepalive", h.Layout.HandleSessionKeepAlive)

	apiGroup.GET("/presets", h.Presets.HandleListPresets)
	apiGroup.POST("/presets/load", h.Presets.HandleLoadPreset)
}
