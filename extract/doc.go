// Package extract pulls scalar and array values out of resolved regions and
// anchors according to a processor's extraction operations.
//
// The central algorithm is column extraction: region blocks are clustered
// into rows by vertical center, column boundaries are derived from header
// anchors (midpoints between adjacent header centers, with the first column
// starting at 0 and the last ending at 1 so every x-position maps to exactly
// one column), and each row contributes the space-joined text of its blocks
// inside the target column. Rows with no block in the column yield an
// explicit empty string rather than being dropped, so that arrays extracted
// from the same region stay row-aligned across operations.
//
// Column selection prefers the processor's field→header correction map over
// the authored positional index: synthesized specs frequently miscount the
// column index while the header label is reliable.
package extract
