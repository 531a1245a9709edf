// Package model provides the layout intermediate representation (IR) for
// positioned-text documents.
//
// This package defines the types that every other package in the module
// consumes: normalized bounding boxes, text blocks, and the DocumentLayout
// container with its spatial query operations.
//
// # Coordinates
//
// All coordinates are normalized per page into the [0,1] range, with the
// origin at the top-left corner (y grows downward, matching OCR output).
// Normalization makes layout patterns transferable across resolutions and
// page sizes: a block at x0=0.05 is 5% in from the left edge regardless of
// whether the source page was rendered at 150 or 600 DPI.
//
// # Immutability
//
// A DocumentLayout is produced once by a layout provider and never modified
// afterward. All query methods are pure; they return fresh slices and never
// reorder the underlying block list.
package model
