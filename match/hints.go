package match

import (
	"sort"

	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/processor"
)

// filterByHint narrows candidates by a location hint. Ordinal hints pick a
// single occurrence out of the candidates ordered by page, then y0, then x0;
// positional hints keep every candidate in the named page area. An unknown
// hint leaves the candidates untouched.
func filterByHint(blocks []model.TextBlock, hint processor.LocationHint) []model.TextBlock {
	if len(blocks) == 0 {
		return blocks
	}

	switch hint {
	case processor.HintFirstOccurrence, processor.HintSecondOccurrence, processor.HintLastOccurrence:
		ordered := make([]model.TextBlock, len(blocks))
		copy(ordered, blocks)
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i].BBox, ordered[j].BBox
			if a.Page != b.Page {
				return a.Page < b.Page
			}
			if a.Y0 != b.Y0 {
				return a.Y0 < b.Y0
			}
			return a.X0 < b.X0
		})

		switch hint {
		case processor.HintFirstOccurrence:
			return ordered[:1]
		case processor.HintSecondOccurrence:
			if len(ordered) > 1 {
				return ordered[1:2]
			}
			return nil
		default: // last_occurrence
			return ordered[len(ordered)-1:]
		}

	case processor.HintTopThird:
		return keep(blocks, func(b model.TextBlock) bool { return b.BBox.Y0 < 0.33 })
	case processor.HintTopHalf:
		return keep(blocks, func(b model.TextBlock) bool { return b.BBox.Y0 < 0.5 })
	case processor.HintBottomHalf:
		return keep(blocks, func(b model.TextBlock) bool { return b.BBox.Y0 >= 0.5 })
	case processor.HintLeftHalf:
		return keep(blocks, func(b model.TextBlock) bool { return b.BBox.X0 < 0.5 })
	case processor.HintRightHalf:
		return keep(blocks, func(b model.TextBlock) bool { return b.BBox.X0 >= 0.5 })
	}

	return blocks
}

func keep(blocks []model.TextBlock, pred func(model.TextBlock) bool) []model.TextBlock {
	var result []model.TextBlock
	for _, b := range blocks {
		if pred(b) {
			result = append(result, b)
		}
	}
	return result
}
