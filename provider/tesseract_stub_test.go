//go:build !ocr

package provider

import (
	"errors"
	"testing"
)

func TestNewTesseractReturnsError(t *testing.T) {
	p, err := NewTesseract()
	if err == nil {
		t.Error("expected error from NewTesseract when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got: %v", err)
	}
	if p != nil {
		t.Error("expected nil provider when OCR is disabled")
	}
}

func TestStubLayoutReturnsError(t *testing.T) {
	var p Tesseract
	if _, err := p.Layout("x.png", nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got: %v", err)
	}
}
