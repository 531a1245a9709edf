package model

import (
	"fmt"
	"strings"
	"unicode"
)

// BlockType classifies a text block by its visual role on the page.
type BlockType string

// Block types inferred by layout providers.
const (
	BlockText   BlockType = "text"
	BlockHeader BlockType = "header"
	BlockNumber BlockType = "number"
)

// TextBlock is a single positioned text element. Blocks are immutable once
// produced by a layout provider.
type TextBlock struct {
	// ID uniquely identifies the block within its document,
	// e.g. "page0_block5".
	ID string `json:"id"`

	// Text is the recognized text content.
	Text string `json:"text"`

	// BBox is the normalized bounding box of the block.
	BBox BoundingBox `json:"bbox"`

	// Confidence is the recognition confidence, 0-100.
	Confidence float64 `json:"confidence"`

	// FontSize is the estimated font size in points, if known.
	FontSize float64 `json:"font_size,omitempty"`

	// IsBold reports whether the block was rendered in a bold face,
	// when the provider can tell.
	IsBold bool `json:"is_bold,omitempty"`

	// BlockType is the inferred visual role of the block.
	BlockType BlockType `json:"block_type"`
}

// IsNumeric reports whether the block text is purely numeric once common
// stat punctuation (periods, dashes, slashes) is stripped.
func (t TextBlock) IsNumeric() bool {
	s := strings.TrimSpace(t.Text)
	s = strings.NewReplacer(".", "", "-", "", "/", "").Replace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsLikelyHeader reports whether the block looks like a page header:
// large font in the top fifth of the page.
func (t TextBlock) IsLikelyHeader() bool {
	return t.FontSize > 14 && t.BBox.Y0 < 0.2
}

func (t TextBlock) String() string {
	text := t.Text
	if len(text) > 30 {
		text = text[:30] + "..."
	}
	return fmt.Sprintf("TextBlock(id=%q, text=%q, at=(%.2f, %.2f))", t.ID, text, t.BBox.X0, t.BBox.Y0)
}

// InferBlockType classifies raw provider output into a BlockType using the
// same heuristics across providers: large text near the top of the page is a
// header, digit-heavy short tokens are numbers, everything else is text.
func InferBlockType(text string, bbox BoundingBox, fontSize float64) BlockType {
	if fontSize > 14 && bbox.Y0 < 0.15 {
		return BlockHeader
	}

	clean := strings.NewReplacer("-", "", "/", "", ".", "").Replace(text)
	if clean != "" && isAllDigits(clean) {
		return BlockNumber
	}
	if len(text) <= 5 && containsDigit(text) {
		return BlockNumber
	}

	return BlockText
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
