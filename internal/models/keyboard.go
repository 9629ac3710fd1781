package models

// KeyboardMetadata is the optional descriptive record that may lead a raw
// layout file. Every field is optional; absent fields are omitted when the
// metadata is re-encoded.
type KeyboardMetadata struct {
	Author      *string     `json:"author,omitempty"`
	Backcolor   *string     `json:"backcolor,omitempty"`
	Background  *Background `json:"background,omitempty"`
	Name        *string     `json:"name,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
	Radii       *string     `json:"radii,omitempty"`
	SwitchBrand *string     `json:"switch_brand,omitempty"`
	SwitchMount *string     `json:"switch_mount,omitempty"`
	SwitchType  *string     `json:"switch_type,omitempty"`
}

// Background is the name/style pair inside KeyboardMetadata.
type Background struct {
	Name  string `json:"name"`
	Style string `json:"style"`
}

// KeyProperties is the full set of recognized property-patch keys.
//
// The fields split into two lifetime classes. Transient fields
// (x,y,w,h,x2,y2,w2,h2,l,n,d,r,rx,ry) apply to the single next placed key
// and are cleared immediately after it. Persistent fields (c,t,g,a,f,f2,p)
// remain in effect for every subsequent key until explicitly overridden.
//
// Numeric fields are *float64 so both integer and fractional literals
// decode; unknown keys in a patch object are ignored.
type KeyProperties struct {
	// Transient, single-key fields.
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
	W  *float64 `json:"w,omitempty"`
	H  *float64 `json:"h,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`
	W2 *float64 `json:"w2,omitempty"`
	H2 *float64 `json:"h2,omitempty"`
	L  *bool    `json:"l,omitempty"` // stepped
	N  *bool    `json:"n,omitempty"` // homing
	D  *bool    `json:"d,omitempty"` // decal

	// Rotation fields, also transient. Their presence switches the next key
	// to absolute positioning.
	R  *float64 `json:"r,omitempty"`  // rotation angle
	RX *float64 `json:"rx,omitempty"` // rotation center x
	RY *float64 `json:"ry,omitempty"` // rotation center y

	// Persistent, row/keyboard-scoped fields.
	C  *string  `json:"c,omitempty"`  // keycap color
	T  *string  `json:"t,omitempty"`  // text color
	G  *bool    `json:"g,omitempty"`  // ghosted
	A  *float64 `json:"a,omitempty"`  // text alignment
	F  *float64 `json:"f,omitempty"`  // primary font size
	F2 *float64 `json:"f2,omitempty"` // secondary font size
	P  *string  `json:"p,omitempty"`  // profile & row
}

// HasRotation reports whether any rotation field is set.
func (p *KeyProperties) HasRotation() bool {
	return p.R != nil || p.RX != nil || p.RY != nil
}

// Key is one placed physical key. Legends holds one entry per visual
// position (the raw legend string split on embedded newlines) and is never
// empty. Properties is a snapshot of the accumulator at placement time.
// Row is the index of the source row the key was placed in.
type Key struct {
	Legends    []string      `json:"legends"`
	Properties KeyProperties `json:"properties"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	Row        int           `json:"row"`
}

// Keyboard is the top-level aggregate: optional metadata plus keys in
// row-then-column encounter order.
type Keyboard struct {
	Metadata *KeyboardMetadata `json:"metadata,omitempty"`
	Keys     []Key             `json:"keys"`
}
