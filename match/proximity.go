package match

import (
	"math"
	"strings"

	"github.com/tsawler/gleaner/model"
)

// findProximity matches a multi-word pattern whose words were recognized as
// separate blocks. Starting from each candidate for the first word, it
// greedily chains forward: each subsequent word takes the nearest
// still-unconsumed candidate to the previously matched word's block, same
// page, within the proximity threshold. A complete chain becomes a synthetic
// block spanning the chain with the words space-joined.
func (r *Resolver) findProximity(layout *model.DocumentLayout, pattern string) []model.TextBlock {
	words := strings.Fields(normalize(pattern))
	if len(words) < 2 {
		return nil
	}

	// Candidate blocks per word. Any word with no candidates rules the
	// whole pattern out.
	wordBlocks := make([][]model.TextBlock, len(words))
	for i, word := range words {
		for _, b := range layout.Blocks {
			if strings.Contains(normalize(b.Text), word) {
				wordBlocks[i] = append(wordBlocks[i], b)
			}
		}
		if len(wordBlocks[i]) == 0 {
			return nil
		}
	}

	var matches []model.TextBlock

	for _, first := range wordBlocks[0] {
		chain := []model.TextBlock{first}
		consumed := map[string]bool{first.ID: true}
		prev := first

		for _, candidates := range wordBlocks[1:] {
			closest, ok := nearestTo(prev, candidates, consumed, r.config.ProximityThreshold)
			if !ok {
				break
			}
			chain = append(chain, closest)
			consumed[closest.ID] = true
			prev = closest
		}

		if len(chain) == len(words) {
			matches = append(matches, syntheticBlock(chain))
		}
	}

	return matches
}

// nearestTo returns the closest unconsumed candidate on prev's page within
// the threshold. Distance is Euclidean from prev's right edge to the
// candidate's left edge, in normalized space.
func nearestTo(prev model.TextBlock, candidates []model.TextBlock, consumed map[string]bool, threshold float64) (model.TextBlock, bool) {
	var closest model.TextBlock
	minDist := threshold
	found := false

	for _, c := range candidates {
		if consumed[c.ID] || c.BBox.Page != prev.BBox.Page {
			continue
		}
		dx := c.BBox.X0 - prev.BBox.X1
		dy := math.Abs(c.BBox.Y0 - prev.BBox.Y0)
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < minDist {
			minDist = dist
			closest = c
			found = true
		}
	}

	return closest, found
}

// syntheticBlock builds one block covering a matched word chain.
func syntheticBlock(chain []model.TextBlock) model.TextBlock {
	bbox := chain[0].BBox
	confidence := chain[0].Confidence
	texts := make([]string, len(chain))
	for i, b := range chain {
		texts[i] = b.Text
		bbox = bbox.Union(b.BBox)
		if b.Confidence < confidence {
			confidence = b.Confidence
		}
	}

	return model.TextBlock{
		ID:         "proximity_" + chain[0].ID,
		Text:       strings.Join(texts, " "),
		BBox:       bbox,
		Confidence: confidence,
		FontSize:   chain[0].FontSize,
		IsBold:     chain[0].IsBold,
		BlockType:  chain[0].BlockType,
	}
}
