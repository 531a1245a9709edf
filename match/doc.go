// Package match resolves a processor's anchors to concrete text blocks in a
// document layout.
//
// Each anchor's patterns are tried in declared order; the first pattern that
// yields at least one candidate wins. Exact and contains matching are
// case-insensitive over NFC-normalized text, since OCR output frequently
// carries combining forms that defeat naive string comparison. Multi-word
// patterns that fail direct matching fall back to proximity matching, which
// chains individually-recognized words back together into a synthetic block.
//
// Anchors are independent of each other, so resolution runs concurrently
// across anchors; the layout is read-only throughout.
package match
