// Package kle implements the relaxed, row-oriented raw keyboard-layout
// format. Parsing runs in three stages: a text-repair preprocessor that
// rewrites the near-JSON input into strict JSON, a structured decode that
// splits off the optional leading metadata object, and a stateful
// interpreter that walks the row arrays and places keys. ToRawFormat is the
// inverse: a canonical re-encoding of a Keyboard into the same textual
// convention.
package kle

import (
	"fmt"
	"strings"

	"github.com/layoutforge/backend/internal/models"
)

// DecodeError is the single failure kind of the codec. It covers malformed
// structured syntax after repair as well as schema mismatches in the
// metadata object or a property patch. There is no partial result: any
// decode failure aborts the whole parse.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding layout: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Parse decodes raw layout text into a Keyboard. On failure the returned
// error is always a *DecodeError.
func Parse(raw string) (*models.Keyboard, error) {
	metadata, rows, err := decodeRows(Repair(strings.TrimSpace(raw)))
	if err != nil {
		return nil, err
	}

	keys, err := interpret(rows)
	if err != nil {
		return nil, err
	}

	return &models.Keyboard{Metadata: metadata, Keys: keys}, nil
}
