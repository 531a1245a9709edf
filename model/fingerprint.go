package model

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// fingerprintBlockCount is the stable-length block prefix hashed into the
// structural fingerprint. Limiting the prefix keeps the hash insensitive to
// trailing content differences (footers, late-page noise).
const fingerprintBlockCount = 50

// ComputeFingerprint hashes the positions, sizes, and types of the first
// fingerprintBlockCount blocks into a layout fingerprint. Text content is
// deliberately excluded so that two documents with the same layout but
// different data (two box scores from the same paper) hash identically.
// Coordinates are rounded to two decimals to absorb sub-percent jitter.
func ComputeFingerprint(blocks []TextBlock) string {
	n := len(blocks)
	if n > fingerprintBlockCount {
		n = fingerprintBlockCount
	}

	parts := make([]string, 0, n)
	for _, b := range blocks[:n] {
		parts = append(parts, fmt.Sprintf("%.2f,%.2f,%.2f,%.2f,%s",
			b.BBox.X0, b.BBox.Y0, b.BBox.Width(), b.BBox.Height(), b.BlockType))
	}

	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
