package model

import (
	"sort"
	"strings"
)

// PageSize holds the physical dimensions of one page in points. The layout
// itself is resolution-independent; sizes are kept only for providers that
// need to map back to source coordinates.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DocumentLayout is the flat, normalized-coordinate representation of a
// document: every positioned text block, page metadata, and a structural
// fingerprint used externally to route documents to processors.
type DocumentLayout struct {
	// Filename identifies the source document (informational only).
	Filename string `json:"filename"`

	// PageCount is the number of pages in the document.
	PageCount int `json:"page_count"`

	// Blocks is the full set of text blocks, all pages.
	Blocks []TextBlock `json:"blocks"`

	// PageSizes holds per-page dimensions in points, indexed by page.
	PageSizes []PageSize `json:"page_sizes,omitempty"`

	// Fingerprint is the structural layout hash, see ComputeFingerprint.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// BlocksByPage returns all blocks on the given 0-indexed page.
func (d *DocumentLayout) BlocksByPage(page int) []TextBlock {
	var result []TextBlock
	for _, b := range d.Blocks {
		if b.BBox.Page == page {
			result = append(result, b)
		}
	}
	return result
}

// BlocksByType returns all blocks of the given type.
func (d *DocumentLayout) BlocksByType(bt BlockType) []TextBlock {
	var result []TextBlock
	for _, b := range d.Blocks {
		if b.BlockType == bt {
			result = append(result, b)
		}
	}
	return result
}

// FindText returns all blocks whose text contains the pattern.
// Matching is case-insensitive unless caseSensitive is true.
func (d *DocumentLayout) FindText(pattern string, caseSensitive bool) []TextBlock {
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}

	var result []TextBlock
	for _, b := range d.Blocks {
		text := b.Text
		if !caseSensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, pattern) {
			result = append(result, b)
		}
	}
	return result
}

// FindTextExact returns all blocks whose full text equals the pattern.
// Matching is case-insensitive unless caseSensitive is true.
func (d *DocumentLayout) FindTextExact(pattern string, caseSensitive bool) []TextBlock {
	var result []TextBlock
	for _, b := range d.Blocks {
		text := b.Text
		cmp := pattern
		if !caseSensitive {
			text = strings.ToLower(text)
			cmp = strings.ToLower(cmp)
		}
		if text == cmp {
			result = append(result, b)
		}
	}
	return result
}

// BlocksNear returns all blocks on the same page whose centers lie within
// maxDistance of the reference block's center. The reference block itself
// is excluded.
func (d *DocumentLayout) BlocksNear(ref TextBlock, maxDistance float64) []TextBlock {
	refCenter := ref.BBox.Center()

	var result []TextBlock
	for _, b := range d.Blocks {
		if b.ID == ref.ID || b.BBox.Page != ref.BBox.Page {
			continue
		}
		if b.BBox.Center().Distance(refCenter) <= maxDistance {
			result = append(result, b)
		}
	}
	return result
}

// BlocksInRow returns all blocks on the same page vertically aligned with
// the reference block (center-y within tolerance), sorted left to right.
// The reference block itself is excluded.
func (d *DocumentLayout) BlocksInRow(ref TextBlock, tolerance float64) []TextBlock {
	refY := ref.BBox.CenterY()

	var result []TextBlock
	for _, b := range d.Blocks {
		if b.ID == ref.ID || b.BBox.Page != ref.BBox.Page {
			continue
		}
		if abs(b.BBox.CenterY()-refY) <= tolerance {
			result = append(result, b)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].BBox.X0 < result[j].BBox.X0
	})
	return result
}

// BlocksInColumn returns all blocks on the same page horizontally aligned
// with the reference block (center-x within tolerance), sorted top to
// bottom. The reference block itself is excluded.
func (d *DocumentLayout) BlocksInColumn(ref TextBlock, tolerance float64) []TextBlock {
	refX := ref.BBox.CenterX()

	var result []TextBlock
	for _, b := range d.Blocks {
		if b.ID == ref.ID || b.BBox.Page != ref.BBox.Page {
			continue
		}
		if abs(b.BBox.CenterX()-refX) <= tolerance {
			result = append(result, b)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].BBox.Y0 < result[j].BBox.Y0
	})
	return result
}

// BlocksInRegion returns all blocks overlapping the given bounding box.
func (d *DocumentLayout) BlocksInRegion(bbox BoundingBox) []TextBlock {
	var result []TextBlock
	for _, b := range d.Blocks {
		if b.BBox.Overlaps(bbox) {
			result = append(result, b)
		}
	}
	return result
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
