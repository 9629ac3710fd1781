package kle

import (
	"errors"
	"testing"
)

func TestParseSingleKeyWithOffset(t *testing.T) {
	kb, err := Parse(`[{"x":1},"A"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(kb.Keys) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(kb.Keys))
	}
	key := kb.Keys[0]
	if len(key.Legends) != 1 || key.Legends[0] != "A" {
		t.Errorf("Expected legends [A], got %v", key.Legends)
	}
	if key.X != 1.0 || key.Y != 0.0 {
		t.Errorf("Expected position (1,0), got (%v,%v)", key.X, key.Y)
	}
}

func TestParseTwoRows(t *testing.T) {
	kb, err := Parse("[\"Q\",\"W\"],\n[\"A\",\"S\"]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(kb.Keys) != 4 {
		t.Fatalf("Expected 4 keys, got %d", len(kb.Keys))
	}

	wantX := []float64{0, 1, 0, 1}
	wantY := []float64{0, 0, 1, 1}
	wantRow := []int{0, 0, 1, 1}
	for i, key := range kb.Keys {
		if key.X != wantX[i] || key.Y != wantY[i] {
			t.Errorf("Key %d: expected (%v,%v), got (%v,%v)", i, wantX[i], wantY[i], key.X, key.Y)
		}
		if key.Row != wantRow[i] {
			t.Errorf("Key %d: expected row %d, got %d", i, wantRow[i], key.Row)
		}
	}
}

func TestParseUnquotedPatchKeys(t *testing.T) {
	kb, err := Parse("[{x:1,y:2},\"K\"]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(kb.Keys) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(kb.Keys))
	}
	if kb.Keys[0].X != 1.0 || kb.Keys[0].Y != 2.0 {
		t.Errorf("Expected position (1,2), got (%v,%v)", kb.Keys[0].X, kb.Keys[0].Y)
	}
}

func TestParseMultiLineLegend(t *testing.T) {
	kb, err := Parse(`["Top\nBottom"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(kb.Keys) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(kb.Keys))
	}
	legends := kb.Keys[0].Legends
	if len(legends) != 2 || legends[0] != "Top" || legends[1] != "Bottom" {
		t.Errorf("Expected legends [Top Bottom], got %v", legends)
	}

	if raw := ToRawFormat(kb); raw != `["Top\nBottom"]` {
		t.Errorf("Re-encoded legend = %s", raw)
	}
}

func TestParseEmptyLegend(t *testing.T) {
	kb, err := Parse(`[""]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(kb.Keys) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(kb.Keys))
	}
	if len(kb.Keys[0].Legends) != 1 || kb.Keys[0].Legends[0] != "" {
		t.Errorf("Expected one empty legend, got %v", kb.Keys[0].Legends)
	}
}

func TestParseMetadata(t *testing.T) {
	raw := "{name:\"Sixty\",author:\"someone\",background:{name:\"Oak\",style:\"wood\"}},\n[\"Q\"]"
	kb, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if kb.Metadata == nil {
		t.Fatal("Expected metadata")
	}
	if kb.Metadata.Name == nil || *kb.Metadata.Name != "Sixty" {
		t.Errorf("Expected name Sixty, got %v", kb.Metadata.Name)
	}
	if kb.Metadata.Background == nil || kb.Metadata.Background.Style != "wood" {
		t.Errorf("Expected background style wood, got %v", kb.Metadata.Background)
	}
	if len(kb.Keys) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(kb.Keys))
	}
	// Metadata consumes the first element; the key row is still row 0.
	if kb.Keys[0].Y != 0.0 {
		t.Errorf("Expected y 0, got %v", kb.Keys[0].Y)
	}
}

func TestParseTransientReset(t *testing.T) {
	kb, err := Parse(`[{w:2},"A","B"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(kb.Keys) != 2 {
		t.Fatalf("Expected 2 keys, got %d", len(kb.Keys))
	}

	a, b := kb.Keys[0], kb.Keys[1]
	if a.Properties.W == nil || *a.Properties.W != 2 {
		t.Errorf("Expected w=2 on first key, got %v", a.Properties.W)
	}
	if b.Properties.W != nil {
		t.Errorf("Transient w leaked onto second key: %v", *b.Properties.W)
	}
	if b.X != 2.0 {
		t.Errorf("Expected second key at x=2, got %v", b.X)
	}
}

func TestParseTransientNotCarriedAcrossPatches(t *testing.T) {
	// The second patch omits w, so w must not survive from the first.
	kb, err := Parse(`[{w:2,c:"#333"},{x:1},"A"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	key := kb.Keys[0]
	if key.Properties.W != nil {
		t.Errorf("w carried across patches: %v", *key.Properties.W)
	}
	if key.Properties.C == nil || *key.Properties.C != "#333" {
		t.Errorf("Persistent c lost: %v", key.Properties.C)
	}
	if key.X != 1.0 {
		t.Errorf("Expected x=1, got %v", key.X)
	}
}

func TestParsePersistentPropagation(t *testing.T) {
	kb, err := Parse("[{c:\"#ff0000\",f:3},\"A\",\"B\"],\n[\"C\"]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(kb.Keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(kb.Keys))
	}
	for i, key := range kb.Keys {
		if key.Properties.C == nil || *key.Properties.C != "#ff0000" {
			t.Errorf("Key %d: expected c #ff0000, got %v", i, key.Properties.C)
		}
		if key.Properties.F == nil || *key.Properties.F != 3 {
			t.Errorf("Key %d: expected f 3, got %v", i, key.Properties.F)
		}
	}
}

func TestParsePersistentOverride(t *testing.T) {
	kb, err := Parse(`[{c:"#ff0000"},"A",{c:"#00ff00"},"B"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if *kb.Keys[0].Properties.C != "#ff0000" {
		t.Errorf("Key 0: got c %v", *kb.Keys[0].Properties.C)
	}
	if *kb.Keys[1].Properties.C != "#00ff00" {
		t.Errorf("Key 1: got c %v", *kb.Keys[1].Properties.C)
	}
}

func TestParseRotationAbsolutePlacement(t *testing.T) {
	kb, err := Parse(`[{r:15,rx:0.5,y:1,x:3},"Rot"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	key := kb.Keys[0]
	if key.X != 3.0 || key.Y != 1.0 {
		t.Errorf("Expected absolute (3,1), got (%v,%v)", key.X, key.Y)
	}
	if key.Properties.R == nil || *key.Properties.R != 15 {
		t.Errorf("Expected r=15, got %v", key.Properties.R)
	}
}

func TestParseRowCounterUnconditional(t *testing.T) {
	// The middle row places no keys but still advances y.
	kb, err := Parse("[\"Q\"],\n[{c:\"#000\"}],\n[\"A\"]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(kb.Keys) != 2 {
		t.Fatalf("Expected 2 keys, got %d", len(kb.Keys))
	}
	if kb.Keys[1].Y != 2.0 {
		t.Errorf("Expected second key at y=2, got %v", kb.Keys[1].Y)
	}
}

func TestParseFractionalNumericPatch(t *testing.T) {
	kb, err := Parse(`[{a:7,f:4.5},"A"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	props := kb.Keys[0].Properties
	if props.A == nil || *props.A != 7 {
		t.Errorf("Expected a=7, got %v", props.A)
	}
	if props.F == nil || *props.F != 4.5 {
		t.Errorf("Expected f=4.5, got %v", props.F)
	}
}

func TestParseIgnoresNonObjectNonStringItems(t *testing.T) {
	kb, err := Parse(`[1,true,"A"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(kb.Keys) != 1 || kb.Keys[0].Legends[0] != "A" {
		t.Fatalf("Expected only key A, got %v", kb.Keys)
	}
}

func TestParseDeterministic(t *testing.T) {
	raw := "{name:\"Board\"},\n[{x:1},\"A\",\"B\"],\n[{r:30,rx:2,y:1,x:2},\"C\"]"
	first, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(first.Keys) != len(second.Keys) {
		t.Fatalf("Key counts differ: %d vs %d", len(first.Keys), len(second.Keys))
	}
	for i := range first.Keys {
		a, b := first.Keys[i], second.Keys[i]
		if a.X != b.X || a.Y != b.Y || a.Legends[0] != b.Legends[0] {
			t.Errorf("Key %d differs between runs", i)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unbalanced brackets", `["Q"`},
		{"patch type mismatch", `[{"x":"oops"},"A"]`},
		{"metadata type mismatch", `{author:5}`},
		{"row not an array", `17`},
		{"legend type inside patch", `[{c:17},"A"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Errorf("Expected *DecodeError, got %T", err)
			}
		})
	}
}
