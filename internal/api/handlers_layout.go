// handlers_layout.go - Parse session and serialization handlers
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/layoutforge/backend/internal/kle"
	"github.com/layoutforge/backend/internal/models"
	"github.com/layoutforge/backend/internal/storage"
	"github.com/vmihailenco/msgpack/v5"
)

// LayoutHandlerImpl implements the LayoutHandler interface
type LayoutHandlerImpl struct {
	store    storage.Store
	sessions SessionManager
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(store storage.Store, sessions SessionManager) LayoutHandler {
	return &LayoutHandlerImpl{
		store:    store,
		sessions: sessions,
	}
}

// ParseRequest is the body of POST /api/layouts/parse. Exactly one of
// FileID and Text must be set.
type ParseRequest struct {
	FileID string `json:"fileId"`
	Text   string `json:"text"`
}

// HandleParseLayout parses a stored file or inline text into a session.
func (h *LayoutHandlerImpl) HandleParseLayout(c echo.Context) error {
	var req ParseRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if (req.FileID == "") == (req.Text == "") {
		return NewBadRequestError("exactly one of fileId and text is required", nil)
	}

	raw := req.Text
	if req.FileID != "" {
		var err error
		raw, err = h.store.ReadAll(req.FileID)
		if err != nil {
			return NewNotFoundError("file", req.FileID)
		}
	}

	session, err := h.sessions.Start(req.FileID, raw)
	if err != nil {
		if req.FileID != "" {
			h.store.SetStatus(req.FileID, "error")
		}
		var decodeErr *kle.DecodeError
		if errors.As(err, &decodeErr) {
			return NewDecodeError(decodeErr)
		}
		return NewInternalError("failed to parse layout", err)
	}

	if req.FileID != "" {
		h.store.SetStatus(req.FileID, "parsed")
	}

	return c.JSON(http.StatusCreated, session)
}

// HandleGetLayout returns the session record and its full parsed keyboard.
func (h *LayoutHandlerImpl) HandleGetLayout(c echo.Context) error {
	id := c.Param("sessionId")

	session, ok := h.sessions.Get(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	kb, _ := h.sessions.Keyboard(id)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session":  session,
		"keyboard": kb,
	})
}

// HandleGetKeys returns the placed keys of a session as JSON.
func (h *LayoutHandlerImpl) HandleGetKeys(c echo.Context) error {
	id := c.Param("sessionId")

	kb, ok := h.sessions.Keyboard(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessionId": id,
		"keys":      kb.Keys,
		"count":     len(kb.Keys),
	})
}

// keysEnvelope is the msgpack payload of the binary keys export.
type keysEnvelope struct {
	SessionID string       `msgpack:"sessionId"`
	Keys      []models.Key `msgpack:"keys"`
}

// HandleGetKeysMsgpack returns the placed keys as a msgpack blob, the
// compact transfer format for large layouts.
func (h *LayoutHandlerImpl) HandleGetKeysMsgpack(c echo.Context) error {
	id := c.Param("sessionId")

	kb, ok := h.sessions.Keyboard(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	data, err := msgpack.Marshal(&keysEnvelope{
		SessionID: id,
		Keys:      kb.Keys,
	})
	if err != nil {
		return NewInternalError("failed to encode keys", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleGetRaw returns the canonical raw re-encoding of a session's keyboard.
func (h *LayoutHandlerImpl) HandleGetRaw(c echo.Context) error {
	id := c.Param("sessionId")

	raw, ok := h.sessions.Raw(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	return c.String(http.StatusOK, raw)
}

// HandleFormatLayout serializes a keyboard posted as JSON back to raw text
// without creating a session.
func (h *LayoutHandlerImpl) HandleFormatLayout(c echo.Context) error {
	var kb models.Keyboard
	if err := c.Bind(&kb); err != nil {
		return NewBadRequestError("invalid keyboard body", err)
	}

	for i := range kb.Keys {
		if len(kb.Keys[i].Legends) == 0 {
			kb.Keys[i].Legends = []string{""}
		}
	}

	return c.String(http.StatusOK, kle.ToRawFormat(&kb))
}

// HandleSessionKeepAlive refreshes a session's idle timer.
func (h *LayoutHandlerImpl) HandleSessionKeepAlive(c echo.Context) error {
	id := c.Param("sessionId")

	if !h.sessions.Touch(id) {
		return NewNotFoundError("session", id)
	}

	return c.NoContent(http.StatusNoContent)
}
