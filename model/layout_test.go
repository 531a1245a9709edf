package model

import (
	"encoding/json"
	"testing"
)

// makeBlock creates a text block positioned at (x0, y0) with a fixed small
// extent, the common case for single OCR tokens.
func makeBlock(id, text string, x0, y0 float64, page int) TextBlock {
	return TextBlock{
		ID:         id,
		Text:       text,
		BBox:       BoundingBox{X0: x0, Y0: y0, X1: x0 + 0.05, Y1: y0 + 0.02, Page: page},
		Confidence: 95,
		BlockType:  BlockText,
	}
}

func TestDocumentLayout_FindText(t *testing.T) {
	doc := &DocumentLayout{
		PageCount: 1,
		Blocks: []TextBlock{
			makeBlock("b0", "Name", 0.05, 0.10, 0),
			makeBlock("b1", "Final Score", 0.40, 0.10, 0),
		},
	}

	if got := doc.FindTextExact("Name", false); len(got) != 1 || got[0].ID != "b0" {
		t.Errorf("exact match for %q failed: %v", "Name", got)
	}
	if got := doc.FindTextExact("name", false); len(got) != 1 {
		t.Errorf("exact match should be case-insensitive, got %v", got)
	}
	if got := doc.FindTextExact("Nam", false); len(got) != 0 {
		t.Errorf("partial text should not match exact, got %v", got)
	}
	if got := doc.FindText("am", false); len(got) != 1 || got[0].ID != "b0" {
		t.Errorf("contains match for %q failed: %v", "am", got)
	}
	if got := doc.FindText("NAME", true); len(got) != 0 {
		t.Errorf("case-sensitive contains should not match, got %v", got)
	}
}

func TestDocumentLayout_BlocksByPage(t *testing.T) {
	doc := &DocumentLayout{
		PageCount: 2,
		Blocks: []TextBlock{
			makeBlock("b0", "one", 0.1, 0.1, 0),
			makeBlock("b1", "two", 0.1, 0.2, 1),
			makeBlock("b2", "three", 0.1, 0.3, 0),
		},
	}

	page0 := doc.BlocksByPage(0)
	if len(page0) != 2 {
		t.Fatalf("expected 2 blocks on page 0, got %d", len(page0))
	}
	if page0[0].ID != "b0" || page0[1].ID != "b2" {
		t.Errorf("unexpected page 0 blocks: %v", page0)
	}

	if got := doc.BlocksByPage(3); len(got) != 0 {
		t.Errorf("expected no blocks on page 3, got %v", got)
	}
}

func TestDocumentLayout_BlocksInRow(t *testing.T) {
	ref := makeBlock("ref", "Pts", 0.30, 0.20, 0)
	doc := &DocumentLayout{
		PageCount: 2,
		Blocks: []TextBlock{
			makeBlock("right", "10", 0.55, 0.20, 0),
			ref,
			makeBlock("left", "Name", 0.05, 0.20, 0),
			makeBlock("below", "2", 0.30, 0.40, 0),
			makeBlock("otherpage", "9", 0.30, 0.20, 1),
		},
	}

	row := doc.BlocksInRow(ref, 0.015)
	if len(row) != 2 {
		t.Fatalf("expected 2 blocks in row, got %d", len(row))
	}
	// Sorted left to right, reference excluded.
	if row[0].ID != "left" || row[1].ID != "right" {
		t.Errorf("unexpected row order: %v, %v", row[0].ID, row[1].ID)
	}
}

func TestDocumentLayout_BlocksNear(t *testing.T) {
	ref := makeBlock("ref", "Box", 0.40, 0.02, 0)
	doc := &DocumentLayout{
		PageCount: 1,
		Blocks: []TextBlock{
			ref,
			makeBlock("near", "Score", 0.46, 0.02, 0),
			makeBlock("far", "Totals", 0.40, 0.90, 0),
		},
	}

	near := doc.BlocksNear(ref, 0.1)
	if len(near) != 1 || near[0].ID != "near" {
		t.Errorf("expected only the nearby block, got %v", near)
	}
}

func TestDocumentLayout_JSONRoundTrip(t *testing.T) {
	doc := &DocumentLayout{
		Filename:  "boxscore.pdf",
		PageCount: 1,
		Blocks: []TextBlock{
			makeBlock("b0", "Name", 0.05, 0.10, 0),
			makeBlock("b1", "10", 0.30, 0.10, 0),
		},
		PageSizes:   []PageSize{{Width: 612, Height: 792}},
		Fingerprint: ComputeFingerprint([]TextBlock{makeBlock("b0", "Name", 0.05, 0.10, 0)}),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back DocumentLayout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if back.Filename != doc.Filename || back.PageCount != doc.PageCount {
		t.Errorf("metadata did not round-trip: %+v", back)
	}
	if len(back.Blocks) != len(doc.Blocks) {
		t.Fatalf("expected %d blocks, got %d", len(doc.Blocks), len(back.Blocks))
	}
	for i := range doc.Blocks {
		if back.Blocks[i] != doc.Blocks[i] {
			t.Errorf("block %d did not round-trip: %+v != %+v", i, back.Blocks[i], doc.Blocks[i])
		}
	}
	if back.Fingerprint != doc.Fingerprint {
		t.Errorf("fingerprint did not round-trip")
	}
}

func TestComputeFingerprint(t *testing.T) {
	blocks := []TextBlock{
		makeBlock("b0", "Name", 0.05, 0.10, 0),
		makeBlock("b1", "Pts", 0.30, 0.10, 0),
	}

	h1 := ComputeFingerprint(blocks)
	h2 := ComputeFingerprint(blocks)
	if h1 != h2 {
		t.Error("fingerprint must be deterministic")
	}
	if len(h1) != 32 {
		t.Errorf("expected 32-char md5 hex, got %d chars", len(h1))
	}

	// Same positions, different content: identical fingerprint.
	renamed := []TextBlock{
		makeBlock("b0", "Player", 0.05, 0.10, 0),
		makeBlock("b1", "Points", 0.30, 0.10, 0),
	}
	if ComputeFingerprint(renamed) != h1 {
		t.Error("fingerprint should ignore text content")
	}

	// Moved block: different fingerprint.
	moved := []TextBlock{
		makeBlock("b0", "Name", 0.50, 0.10, 0),
		makeBlock("b1", "Pts", 0.30, 0.10, 0),
	}
	if ComputeFingerprint(moved) == h1 {
		t.Error("fingerprint should change when layout changes")
	}

	if ComputeFingerprint(nil) != ComputeFingerprint([]TextBlock{}) {
		t.Error("empty and nil block lists should hash identically")
	}
}

func TestInferBlockType(t *testing.T) {
	tests := []struct {
		text     string
		y0       float64
		fontSize float64
		want     BlockType
	}{
		{"Windom Eagles Box Score", 0.05, 18, BlockHeader},
		{"Windom Eagles Box Score", 0.50, 18, BlockText},
		{"10", 0.50, 10, BlockNumber},
		{"3-7", 0.50, 10, BlockNumber},
		{"10/12", 0.50, 10, BlockNumber},
		{"Q1", 0.50, 10, BlockNumber},
		{"Johnson", 0.50, 10, BlockText},
	}

	for _, tt := range tests {
		bbox := BoundingBox{X0: 0.1, Y0: tt.y0, X1: 0.3, Y1: tt.y0 + 0.02}
		if got := InferBlockType(tt.text, bbox, tt.fontSize); got != tt.want {
			t.Errorf("InferBlockType(%q, y0=%v, size=%v) = %v, want %v",
				tt.text, tt.y0, tt.fontSize, got, tt.want)
		}
	}
}

func TestTextBlock_IsNumeric(t *testing.T) {
	if !(TextBlock{Text: " 12-3 "}).IsNumeric() {
		t.Error("expected dash-separated digits to be numeric")
	}
	if (TextBlock{Text: "abc"}).IsNumeric() {
		t.Error("expected letters not to be numeric")
	}
	if (TextBlock{Text: "--"}).IsNumeric() {
		t.Error("expected punctuation-only text not to be numeric")
	}
}
