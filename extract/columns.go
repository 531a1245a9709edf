package extract

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/processor"
)

// extractColumn pulls one column out of a region's row grid. Array-marked
// field paths receive one value per row, in row order, with an empty string
// standing in for rows that have no block in the column so that sibling
// columns from the same region stay aligned. Paths without an array marker
// receive the first row's value only.
func (e *Extractor) extractColumn(in *Input, op processor.ExtractionOp, regionName string, index int) any {
	blocks, ok := in.Regions[regionName]
	if !ok || len(blocks) == 0 {
		e.log.Warn("extraction source yielded nothing",
			zap.String("field", op.FieldPath),
			zap.String("region", regionName))
		return nil
	}

	rows := clusterRows(blocks, e.config.RowTolerance)

	headers, fromFirstRow := e.headerBlocks(in, rows)
	if fromFirstRow {
		rows = rows[1:]
	}
	if len(headers) == 0 || len(rows) == 0 {
		e.log.Warn("region has no usable rows",
			zap.String("field", op.FieldPath),
			zap.String("region", regionName))
		return nil
	}

	boundaries := columnBoundaries(headers)
	target := e.targetColumn(in, op, headers, index)
	if target < 0 || target > len(boundaries) {
		e.log.Warn("column index out of range",
			zap.String("field", op.FieldPath),
			zap.String("region", regionName),
			zap.Int("column", target),
			zap.Int("columns", len(boundaries)+1))
		return nil
	}

	values := make([]string, len(rows))
	for i, row := range rows {
		var cell []string
		for _, b := range row {
			if columnFor(boundaries, b.BBox.X0) == target {
				cell = append(cell, b.Text)
			}
		}
		values[i] = strings.Join(cell, " ")
	}

	if strings.Contains(op.FieldPath, "[]") {
		out := make([]any, len(values))
		for i, v := range values {
			out[i] = Apply(v, op.Transform)
		}
		return out
	}
	return Apply(values[0], op.Transform)
}

// targetColumn chooses the column to read. When the processor maps the
// operation's field name to a header label, the column under the matching
// header wins over the authored positional index.
func (e *Extractor) targetColumn(in *Input, op processor.ExtractionOp, headers []model.TextBlock, index int) int {
	label, ok := in.FieldColumnMap[fieldName(op.FieldPath)]
	if !ok {
		return index
	}

	want := normalizeLabel(label)
	for i, h := range headers {
		got := normalizeLabel(h.Text)
		if got == want || strings.Contains(got, want) {
			if i != index {
				e.log.Debug("column corrected by header label",
					zap.String("field", op.FieldPath),
					zap.String("header", h.Text),
					zap.Int("authored", index),
					zap.Int("corrected", i))
			}
			return i
		}
	}

	e.log.Warn("mapped header label not found, using authored index",
		zap.String("field", op.FieldPath),
		zap.String("label", label))
	return index
}

// headerBlocks returns the column header blocks ordered left to right. They
// come from the processor's column-marker anchors when any resolved on the
// region's page; otherwise the region's first row serves as the header and
// the second return value is true so the caller drops it from the data rows.
func (e *Extractor) headerBlocks(in *Input, rows [][]model.TextBlock) ([]model.TextBlock, bool) {
	if len(rows) == 0 {
		return nil, false
	}
	page := rows[0][0].BBox.Page

	var headers []model.TextBlock
	for _, marker := range in.ColumnMarkers {
		block, ok := in.Anchors[marker.Name]
		if !ok || block.BBox.Page != page {
			continue
		}
		headers = append(headers, block)
	}

	if len(headers) == 0 {
		headers = append(headers, rows[0]...)
		sortByCenterX(headers)
		return dedupeCenters(headers, e.config.ColumnAlignTolerance), true
	}

	sortByCenterX(headers)
	return dedupeCenters(headers, e.config.ColumnAlignTolerance), false
}

// columnBoundaries returns the x-positions separating adjacent columns: the
// midpoints between consecutive header centers. With n headers there are n-1
// boundaries; the first column implicitly starts at 0 and the last ends at 1,
// so every x maps to a column.
func columnBoundaries(headers []model.TextBlock) []float64 {
	boundaries := make([]float64, 0, len(headers)-1)
	for i := 1; i < len(headers); i++ {
		boundaries = append(boundaries, (headers[i-1].BBox.CenterX()+headers[i].BBox.CenterX())/2)
	}
	return boundaries
}

// columnFor maps an x-position to a column index. A position exactly on a
// boundary belongs to the column on the right.
func columnFor(boundaries []float64, x float64) int {
	for i, b := range boundaries {
		if x < b {
			return i
		}
	}
	return len(boundaries)
}

// clusterRows groups blocks into rows by vertical center. A block joins the
// current row when its center is within tolerance of the row's first block;
// rows are ordered top to bottom and each row's blocks left to right.
func clusterRows(blocks []model.TextBlock, tolerance float64) [][]model.TextBlock {
	if len(blocks) == 0 {
		return nil
	}

	sorted := make([]model.TextBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.CenterY() < sorted[j].BBox.CenterY()
	})

	var rows [][]model.TextBlock
	current := []model.TextBlock{sorted[0]}
	rowY := sorted[0].BBox.CenterY()

	for _, b := range sorted[1:] {
		if abs(b.BBox.CenterY()-rowY) <= tolerance {
			current = append(current, b)
			continue
		}
		rows = append(rows, current)
		current = []model.TextBlock{b}
		rowY = b.BBox.CenterY()
	}
	rows = append(rows, current)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].BBox.X0 < row[j].BBox.X0
		})
	}
	return rows
}

// dedupeCenters drops headers whose center is within tolerance of the
// previous kept header. Headers must already be sorted by center x.
func dedupeCenters(headers []model.TextBlock, tolerance float64) []model.TextBlock {
	if len(headers) < 2 {
		return headers
	}
	kept := headers[:1]
	for _, h := range headers[1:] {
		if h.BBox.CenterX()-kept[len(kept)-1].BBox.CenterX() > tolerance {
			kept = append(kept, h)
		}
	}
	return kept
}

func sortByCenterX(blocks []model.TextBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].BBox.CenterX() < blocks[j].BBox.CenterX()
	})
}

// fieldName returns the last path segment without its array marker,
// e.g. "home_team.players[].fouls" yields "fouls".
func fieldName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimSuffix(path, "[]")
}

// normalizeLabel lowercases and trims a header label for comparison.
func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
