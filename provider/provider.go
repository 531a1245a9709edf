package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/gleaner/model"
)

// Provider turns one source document into a DocumentLayout.
type Provider interface {
	Layout(filename string, data []byte) (*model.DocumentLayout, error)
}

var _ Provider = (*Tesseract)(nil)

// DecodeLayout reads a DocumentLayout from its JSON form, checks its
// geometry, and fills in the structural fingerprint when absent.
func DecodeLayout(r io.Reader) (*model.DocumentLayout, error) {
	var layout model.DocumentLayout
	dec := json.NewDecoder(r)
	if err := dec.Decode(&layout); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}

	if layout.PageCount < 1 {
		return nil, fmt.Errorf("layout has no pages")
	}
	for i, b := range layout.Blocks {
		if !b.BBox.IsValid() {
			return nil, fmt.Errorf("block %d (%q): invalid bounding box", i, b.ID)
		}
		if b.BBox.Page < 0 || b.BBox.Page >= layout.PageCount {
			return nil, fmt.Errorf("block %d (%q): page %d out of range", i, b.ID, b.BBox.Page)
		}
	}

	if layout.Fingerprint == "" {
		layout.Fingerprint = model.ComputeFingerprint(layout.Blocks)
	}
	return &layout, nil
}

// LoadLayoutFile reads a layout JSON file from disk.
func LoadLayoutFile(path string) (*model.DocumentLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout file: %w", err)
	}
	defer f.Close()
	return DecodeLayout(f)
}

// EncodeLayout writes a DocumentLayout as indented JSON.
func EncodeLayout(w io.Writer, layout *model.DocumentLayout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(layout)
}
