package provider

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func grayScan(width, height int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestDecodeImage(t *testing.T) {
	src := grayScan(40, 20)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatalf("encoding bmp: %v", err)
	}

	tests := []struct {
		format string
		data   []byte
	}{
		{"png", pngBuf.Bytes()},
		{"bmp", bmpBuf.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			img, format, err := DecodeImage(tt.data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("expected format %q, got %q", tt.format, format)
			}
			if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
				t.Errorf("unexpected bounds: %v", img.Bounds())
			}
		})
	}
}

func TestDecodeImage_Garbage(t *testing.T) {
	if _, _, err := DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected error for undecodable data")
	}
}
