package kle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/layoutforge/backend/internal/models"
)

// accumulator is the interpreter state carried across row items: the row
// flow position and the running property set. It is passed by value so each
// step returns a new state, keeping interpretation testable in isolation.
type accumulator struct {
	x     float64
	y     float64
	props models.KeyProperties
}

// applyPatch merges a property patch into the accumulator. Persistent
// fields are copied only when present in the patch; transient fields are
// overwritten wholesale, so a transient field absent from this patch does
// not carry over from a previous patch.
func (a accumulator) applyPatch(patch models.KeyProperties) accumulator {
	if patch.C != nil {
		a.props.C = patch.C
	}
	if patch.T != nil {
		a.props.T = patch.T
	}
	if patch.G != nil {
		a.props.G = patch.G
	}
	if patch.A != nil {
		a.props.A = patch.A
	}
	if patch.F != nil {
		a.props.F = patch.F
	}
	if patch.F2 != nil {
		a.props.F2 = patch.F2
	}
	if patch.P != nil {
		a.props.P = patch.P
	}

	a.props.X = patch.X
	a.props.Y = patch.Y
	a.props.W = patch.W
	a.props.H = patch.H
	a.props.X2 = patch.X2
	a.props.Y2 = patch.Y2
	a.props.W2 = patch.W2
	a.props.H2 = patch.H2
	a.props.L = patch.L
	a.props.N = patch.N
	a.props.D = patch.D
	a.props.R = patch.R
	a.props.RX = patch.RX
	a.props.RY = patch.RY

	return a
}

// placeKey emits a key for a legend string, advances the row flow and
// clears the transient fields. Rotated keys take the raw transient offsets
// as absolute coordinates instead of adding them to the row flow.
func (a accumulator) placeKey(legend string, row int) (accumulator, models.Key) {
	x := a.x + floatOrZero(a.props.X)
	y := a.y + floatOrZero(a.props.Y)
	if a.props.HasRotation() {
		x = floatOrZero(a.props.X)
		y = floatOrZero(a.props.Y)
	}

	key := models.Key{
		Legends:    strings.Split(legend, "\n"),
		Properties: a.props,
		X:          x,
		Y:          y,
		Row:        row,
	}

	width := 1.0
	if a.props.W != nil {
		width = *a.props.W
	}
	a.x = x + width

	a.props.X = nil
	a.props.Y = nil
	a.props.W = nil
	a.props.H = nil
	a.props.X2 = nil
	a.props.Y2 = nil
	a.props.W2 = nil
	a.props.H2 = nil
	a.props.L = nil
	a.props.N = nil
	a.props.D = nil
	a.props.R = nil
	a.props.RX = nil
	a.props.RY = nil

	return a, key
}

// interpret walks the row arrays and produces the placed key list. The x
// accumulator resets at the start of every row and y advances by exactly
// 1.0 per row, independent of key heights. Row items that are neither
// objects nor strings are ignored.
func interpret(rows []json.RawMessage) ([]models.Key, error) {
	keys := make([]models.Key, 0)
	acc := accumulator{}

	for rowIdx, rawRow := range rows {
		var items []json.RawMessage
		if err := json.Unmarshal(rawRow, &items); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("row %d is not an array: %w", rowIdx, err)}
		}

		acc.x = 0
		for _, item := range items {
			switch firstByte(item) {
			case '{':
				var patch models.KeyProperties
				if err := json.Unmarshal(item, &patch); err != nil {
					return nil, &DecodeError{Err: fmt.Errorf("row %d property patch: %w", rowIdx, err)}
				}
				acc = acc.applyPatch(patch)
			case '"':
				var legend string
				if err := json.Unmarshal(item, &legend); err != nil {
					return nil, &DecodeError{Err: fmt.Errorf("row %d legend: %w", rowIdx, err)}
				}
				var key models.Key
				acc, key = acc.placeKey(legend, rowIdx)
				keys = append(keys, key)
			}
		}
		acc.y += 1.0
	}

	return keys, nil
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
