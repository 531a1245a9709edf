//go:build !ocr

package provider

import (
	"errors"

	"github.com/tsawler/gleaner/model"
)

// ErrOCRNotEnabled is returned when the Tesseract provider is used but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Tesseract is the stub provider used when the "ocr" build tag is not set.
type Tesseract struct {
	Language string
}

// NewTesseract returns an error indicating OCR support is not enabled.
func NewTesseract() (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Layout returns an error indicating OCR support is not enabled.
func (t *Tesseract) Layout(filename string, data []byte) (*model.DocumentLayout, error) {
	return nil, ErrOCRNotEnabled
}
