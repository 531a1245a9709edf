package provider

import (
	"bytes"
	"fmt"
	"image"

	// Scanned documents arrive as TIFF and BMP as often as PNG or JPEG;
	// blank imports register their decoders with image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeImage decodes a scanned document image and reports its format. All
// formats the package registers are accepted: PNG, JPEG, TIFF, and BMP.
func DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}
	return img, format, nil
}
