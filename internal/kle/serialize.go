package kle

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/layoutforge/backend/internal/models"
)

// ToRawFormat re-encodes a Keyboard into the raw layout convention:
// metadata as a strict JSON object followed by ",\n", then one bracketed
// array per source row, rows joined by ",\n". Before each key only the
// minimal property delta is emitted, with the unquoted-key style of the
// relaxed format. Persistent properties are tracked in the model but never
// re-emitted; only positional and rotation fields participate in deltas.
//
// The result is canonical rather than byte-identical to arbitrary source
// text, but serializing the parse of canonical output reproduces it
// exactly. Serialization has no failure mode for a well-formed Keyboard.
func ToRawFormat(kb *models.Keyboard) string {
	var b strings.Builder

	if kb.Metadata != nil {
		if data, err := json.Marshal(kb.Metadata); err == nil {
			b.Write(data)
			b.WriteString(",\n")
		}
	}

	lastProps := models.KeyProperties{}
	for i, row := range groupRows(kb.Keys) {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteByte('[')
		for j, key := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			if delta := formatDelta(&key.Properties, &lastProps); delta != "" {
				b.WriteString(delta)
				b.WriteByte(',')
			}
			b.Write(quoteLegends(key.Legends))
			lastProps = key.Properties
		}
		b.WriteByte(']')
	}

	return b.String()
}

// groupRows buckets keys by their stored row index, preserving encounter
// order within a row, with rows ordered by ascending index.
func groupRows(keys []models.Key) [][]models.Key {
	byRow := make(map[int][]models.Key)
	for _, key := range keys {
		byRow[key.Row] = append(byRow[key.Row], key)
	}

	indexes := make([]int, 0, len(byRow))
	for idx := range byRow {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	rows := make([][]models.Key, 0, len(indexes))
	for _, idx := range indexes {
		rows = append(rows, byRow[idx])
	}
	return rows
}

// formatDelta renders the property patch needed before a key, or "" when
// nothing qualifies. Rotated keys use the fixed field order r,rx,ry,y,x
// with y and x always included when present; all other keys emit y,x only
// when the value changed from the previous key.
func formatDelta(props, last *models.KeyProperties) string {
	var parts []string

	if props.HasRotation() {
		if props.R != nil && !equalFloat(props.R, last.R) {
			parts = append(parts, "r:"+formatNum(*props.R))
		}
		if props.RX != nil && !equalFloat(props.RX, last.RX) {
			parts = append(parts, "rx:"+formatNum(*props.RX))
		}
		if props.RY != nil && !equalFloat(props.RY, last.RY) {
			parts = append(parts, "ry:"+formatNum(*props.RY))
		}
		if props.Y != nil {
			parts = append(parts, "y:"+formatNum(*props.Y))
		}
		if props.X != nil {
			parts = append(parts, "x:"+formatNum(*props.X))
		}
	} else {
		if props.Y != nil && !equalFloat(props.Y, last.Y) {
			parts = append(parts, "y:"+formatNum(*props.Y))
		}
		if props.X != nil && !equalFloat(props.X, last.X) {
			parts = append(parts, "x:"+formatNum(*props.X))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// quoteLegends joins the legend list with the line-break marker and renders
// it as a JSON string literal.
func quoteLegends(legends []string) []byte {
	data, err := json.Marshal(strings.Join(legends, "\n"))
	if err != nil {
		// A Go string always marshals.
		return []byte(`""`)
	}
	return data
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
