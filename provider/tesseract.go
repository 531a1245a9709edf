//go:build ocr

package provider

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/gleaner/model"
)

// Tesseract runs OCR on scanned images and parses the resulting hOCR into a
// DocumentLayout. It requires Tesseract to be installed on the system. On
// macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type Tesseract struct {
	// Language is a "+"-separated Tesseract language list, e.g. "eng+fra".
	// Empty means Tesseract's default.
	Language string

	// PageSegMode overrides Tesseract's page segmentation mode when set.
	PageSegMode *gosseract.PageSegMode
}

// NewTesseract creates a Tesseract-backed layout provider.
func NewTesseract() (*Tesseract, error) {
	return &Tesseract{}, nil
}

// Layout recognizes one image (PNG, JPEG, TIFF, BMP) and returns its layout.
// Each call uses a fresh Tesseract client, so a Tesseract value is safe for
// concurrent use.
func (t *Tesseract) Layout(filename string, data []byte) (*model.DocumentLayout, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.Language != "" {
		if err := client.SetLanguage(strings.Split(t.Language, "+")...); err != nil {
			return nil, fmt.Errorf("setting language: %w", err)
		}
	}
	if t.PageSegMode != nil {
		if err := client.SetPageSegMode(*t.PageSegMode); err != nil {
			return nil, fmt.Errorf("setting page segmentation mode: %w", err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("setting image: %w", err)
	}

	hocr, err := client.HOCRText()
	if err != nil {
		return nil, fmt.Errorf("recognizing image: %w", err)
	}

	return ParseHOCR(strings.NewReader(hocr), filename)
}
