package models

// SessionStatus represents the status of a layout parse session.
type SessionStatus string

const (
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusError    SessionStatus = "error"
)

// LayoutSession represents one parsed layout held in memory. Parsing a raw
// layout file is a bounded, CPU-only transformation, so a session is either
// complete or failed by the time its creation call returns.
type LayoutSession struct {
	ID               string        `json:"id"`
	FileID           string        `json:"fileId,omitempty"`
	Status           SessionStatus `json:"status"`
	Name             string        `json:"name,omitempty"` // from metadata, when present
	KeyCount         int           `json:"keyCount"`
	RowCount         int           `json:"rowCount"`
	HasMetadata      bool          `json:"hasMetadata"`
	ProcessingTimeMs int64         `json:"processingTimeMs"`
	Error            string        `json:"error,omitempty"`
}
