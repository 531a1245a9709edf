// Package region converts resolved anchor pairs into bounded block subsets.
//
// A region is page-scoped: its start and end anchors must sit on the same
// page, and the region holds every block whose top edge falls between the
// start anchor's bottom edge and the end anchor's top edge. The
// end-of-document sentinel extends a region to the bottom of the start
// anchor's page. Regions never span pages.
package region

import (
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/processor"
)

// Resolver materializes region specs into block lists.
type Resolver struct {
	log *zap.Logger
}

// NewResolver creates a region resolver. A nil logger disables logging.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// Resolve maps each region spec to its ordered block list. A region whose
// anchors were not resolved is omitted from the result and logged; it is
// not fatal here, since extraction ops that depend on it will simply yield
// nothing. Blocks are sorted by (y0, x0).
func (r *Resolver) Resolve(layout *model.DocumentLayout, anchors map[string]model.TextBlock, regions []processor.Region) map[string][]model.TextBlock {
	result := make(map[string][]model.TextBlock)

	for _, spec := range regions {
		start, ok := anchors[spec.StartAnchor]
		if !ok {
			r.log.Warn("region missing start anchor",
				zap.String("region", spec.Name),
				zap.String("anchor", spec.StartAnchor))
			continue
		}

		var blocks []model.TextBlock
		if spec.EndAnchor == processor.EndOfDocument {
			blocks = blocksBelow(layout, start)
		} else {
			end, ok := anchors[spec.EndAnchor]
			if !ok {
				r.log.Warn("region missing end anchor",
					zap.String("region", spec.Name),
					zap.String("anchor", spec.EndAnchor))
				continue
			}
			blocks = blocksBetween(layout, start, end)
		}

		result[spec.Name] = blocks
		r.log.Debug("region resolved",
			zap.String("region", spec.Name),
			zap.Int("blocks", len(blocks)))
	}

	return result
}

// blocksBetween returns all blocks on the anchors' shared page with y0 in
// [start.y1, end.y0], sorted top-to-bottom then left-to-right. Anchors on
// different pages yield an empty region.
func blocksBetween(layout *model.DocumentLayout, start, end model.TextBlock) []model.TextBlock {
	if start.BBox.Page != end.BBox.Page {
		return nil
	}

	var between []model.TextBlock
	for _, b := range layout.BlocksByPage(start.BBox.Page) {
		if b.BBox.Y0 >= start.BBox.Y1 && b.BBox.Y0 <= end.BBox.Y0 {
			between = append(between, b)
		}
	}

	sortReadingOrder(between)
	return between
}

// blocksBelow returns every block on the start anchor's page at or below
// the anchor's bottom edge.
func blocksBelow(layout *model.DocumentLayout, start model.TextBlock) []model.TextBlock {
	var below []model.TextBlock
	for _, b := range layout.BlocksByPage(start.BBox.Page) {
		if b.BBox.Y0 >= start.BBox.Y1 {
			below = append(below, b)
		}
	}

	sortReadingOrder(below)
	return below
}

func sortReadingOrder(blocks []model.TextBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i].BBox, blocks[j].BBox
		if a.Y0 != b.Y0 {
			return a.Y0 < b.Y0
		}
		return a.X0 < b.X0
	})
}
