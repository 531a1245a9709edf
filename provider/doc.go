// Package provider produces DocumentLayout values from source documents.
//
// Three sources are supported: layout JSON produced by an earlier run or an
// external analyzer (DecodeLayout), hOCR markup as emitted by Tesseract and
// other OCR engines (ParseHOCR), and raw scanned images via the Tesseract
// provider itself. The Tesseract path needs cgo and a system Tesseract
// install, so it sits behind the "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag NewTesseract returns ErrOCRNotEnabled and everything else
// in the package still works.
//
// All providers emit the same normalized geometry: coordinates in [0, 1]
// relative to the page, y growing downward, and a structural fingerprint
// computed over the first blocks.
package provider
