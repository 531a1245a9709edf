package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/processor"
)

// Config holds the geometric tolerances for extraction.
type Config struct {
	// RowTolerance is the maximum vertical-center distance between two
	// blocks considered part of the same row.
	RowTolerance float64

	// ColumnAlignTolerance collapses header anchors whose horizontal
	// centers are closer than this into a single column.
	ColumnAlignTolerance float64

	// MaxValueDistance caps how far to the right of an anchor a
	// value_right candidate may start.
	MaxValueDistance float64
}

// DefaultConfig returns tolerances tuned for typical scanned documents.
func DefaultConfig() Config {
	return Config{
		RowTolerance:         0.015,
		ColumnAlignTolerance: 0.03,
		MaxValueDistance:     0.35,
	}
}

// Input bundles the resolved document state one extraction pass reads from:
// the layout itself, the anchor and region resolutions, and the processor's
// column metadata. Input is never mutated by extraction.
type Input struct {
	Layout         *model.DocumentLayout
	Anchors        map[string]model.TextBlock
	Regions        map[string][]model.TextBlock
	ColumnMarkers  []processor.Anchor
	FieldColumnMap map[string]string
}

// Extractor evaluates extraction operation sources against an Input.
type Extractor struct {
	config Config
	log    *zap.Logger
}

// NewExtractor creates an extractor with default tolerances. A nil logger
// disables logging.
func NewExtractor(log *zap.Logger) *Extractor {
	return NewExtractorWithConfig(log, DefaultConfig())
}

// NewExtractorWithConfig creates an extractor with custom tolerances.
func NewExtractorWithConfig(log *zap.Logger, config Config) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{config: config, log: log}
}

// Extract evaluates one operation's source against the input and returns the
// value to write at the operation's field path: a string, a coerced scalar,
// or a []any for column extractions into array-marked paths. A source that
// resolves to nothing (missing region, missing anchor, empty column) returns
// nil with a logged warning; only a malformed source string is an error.
func (e *Extractor) Extract(in *Input, op processor.ExtractionOp) (any, error) {
	if text, ok := strings.CutPrefix(op.Source, "literal."); ok {
		return Apply(text, op.Transform), nil
	}

	parts := strings.SplitN(op.Source, ".", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("malformed source %q: want <kind>.<name>[.<accessor>]", op.Source)
	}
	kind, name := parts[0], parts[1]
	accessor := ""
	if len(parts) == 3 {
		accessor = parts[2]
	}

	switch kind {
	case "region":
		if accessor == "" {
			return e.wholeRegion(in, op, name), nil
		}
		index, err := parseColumnAccessor(accessor)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", op.Source, err)
		}
		return e.extractColumn(in, op, name, index), nil

	case "anchor":
		switch {
		case accessor == "" || accessor == "text":
			return e.anchorText(in, op, name), nil
		case strings.HasPrefix(accessor, "value_right"):
			index, err := parseIndexSuffix(accessor, "value_right")
			if err != nil {
				return nil, fmt.Errorf("source %q: %w", op.Source, err)
			}
			return e.valueRight(in, op, name, index), nil
		default:
			return nil, fmt.Errorf("source %q: unknown anchor accessor %q", op.Source, accessor)
		}

	default:
		return nil, fmt.Errorf("source %q: unknown kind %q", op.Source, kind)
	}
}

// wholeRegion joins every block in the region, in reading order, with single
// spaces.
func (e *Extractor) wholeRegion(in *Input, op processor.ExtractionOp, name string) any {
	blocks, ok := in.Regions[name]
	if !ok || len(blocks) == 0 {
		e.log.Warn("extraction source yielded nothing",
			zap.String("field", op.FieldPath),
			zap.String("region", name))
		return nil
	}

	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}
	return Apply(strings.Join(texts, " "), op.Transform)
}

// anchorText returns the resolved anchor block's own text.
func (e *Extractor) anchorText(in *Input, op processor.ExtractionOp, name string) any {
	block, ok := in.Anchors[name]
	if !ok {
		e.log.Warn("extraction source yielded nothing",
			zap.String("field", op.FieldPath),
			zap.String("anchor", name))
		return nil
	}
	return Apply(block.Text, op.Transform)
}

// valueRight picks the (index+1)-th numeric-looking block on the anchor's
// row, strictly to its right and within MaxValueDistance.
func (e *Extractor) valueRight(in *Input, op processor.ExtractionOp, name string, index int) any {
	anchor, ok := in.Anchors[name]
	if !ok {
		e.log.Warn("extraction source yielded nothing",
			zap.String("field", op.FieldPath),
			zap.String("anchor", name))
		return nil
	}

	var candidates []model.TextBlock
	for _, b := range in.Layout.BlocksByPage(anchor.BBox.Page) {
		if b.ID == anchor.ID {
			continue
		}
		if abs(b.BBox.CenterY()-anchor.BBox.CenterY()) > e.config.RowTolerance {
			continue
		}
		if b.BBox.X0 <= anchor.BBox.X1 {
			continue
		}
		if b.BBox.X0-anchor.BBox.X1 > e.config.MaxValueDistance {
			continue
		}
		if !b.IsNumeric() {
			continue
		}
		candidates = append(candidates, b)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].BBox.X0 < candidates[j].BBox.X0
	})

	if index < 0 || index >= len(candidates) {
		e.log.Warn("no value right of anchor",
			zap.String("field", op.FieldPath),
			zap.String("anchor", name),
			zap.Int("index", index),
			zap.Int("candidates", len(candidates)))
		return nil
	}
	return Apply(candidates[index].Text, op.Transform)
}

// parseColumnAccessor parses "column[N]".
func parseColumnAccessor(accessor string) (int, error) {
	if !strings.HasPrefix(accessor, "column") {
		return 0, fmt.Errorf("unknown region accessor %q", accessor)
	}
	return parseIndexSuffix(accessor, "column")
}

// parseIndexSuffix parses the optional "[N]" after a known accessor word.
// A bare accessor means index 0.
func parseIndexSuffix(accessor, word string) (int, error) {
	rest := strings.TrimPrefix(accessor, word)
	if rest == "" {
		return 0, nil
	}
	inner, ok := strings.CutPrefix(rest, "[")
	if !ok {
		return 0, fmt.Errorf("malformed accessor %q", accessor)
	}
	inner, ok = strings.CutSuffix(inner, "]")
	if !ok {
		return 0, fmt.Errorf("malformed accessor %q", accessor)
	}
	index, err := strconv.Atoi(inner)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("bad index in accessor %q", accessor)
	}
	return index, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
