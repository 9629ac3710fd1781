package kle

import (
	"encoding/json"
	"fmt"

	"github.com/layoutforge/backend/internal/models"
)

// decodeRows parses repaired text into its top-level elements and splits
// off the optional leading metadata object. Metadata is present only when
// the first element is an object; unknown metadata fields are ignored but
// wrongly typed ones fail the decode.
func decodeRows(repaired string) (*models.KeyboardMetadata, []json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(repaired), &elems); err != nil {
		return nil, nil, &DecodeError{Err: err}
	}

	if len(elems) == 0 || firstByte(elems[0]) != '{' {
		return nil, elems, nil
	}

	metadata := &models.KeyboardMetadata{}
	if err := json.Unmarshal(elems[0], metadata); err != nil {
		return nil, nil, &DecodeError{Err: fmt.Errorf("metadata object: %w", err)}
	}
	return metadata, elems[1:], nil
}

// firstByte returns the first non-whitespace byte of a raw JSON value,
// which identifies its type, or 0 for an empty value.
func firstByte(raw json.RawMessage) byte {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}
