package match

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/processor"
)

// RequiredAnchorError reports that an anchor marked required matched nothing
// in the document. It aborts the whole execution.
type RequiredAnchorError struct {
	Anchor string
}

func (e *RequiredAnchorError) Error() string {
	return fmt.Sprintf("required anchor %q not found in document", e.Anchor)
}

// Config holds tunable matching parameters.
type Config struct {
	// ProximityThreshold is the maximum Euclidean distance, in normalized
	// coordinates, between consecutive words of a proximity-matched
	// multi-word pattern.
	ProximityThreshold float64
}

// DefaultConfig returns the default matching configuration.
func DefaultConfig() Config {
	return Config{
		ProximityThreshold: 0.1,
	}
}

// Resolver finds anchor blocks in a document layout.
type Resolver struct {
	config Config
	log    *zap.Logger
}

// NewResolver creates a resolver with default configuration. A nil logger
// disables logging.
func NewResolver(log *zap.Logger) *Resolver {
	return NewResolverWithConfig(log, DefaultConfig())
}

// NewResolverWithConfig creates a resolver with custom configuration.
func NewResolverWithConfig(log *zap.Logger, config Config) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{config: config, log: log}
}

// Resolve finds every anchor in the layout and returns a map from anchor
// name to its matched block. Anchors are resolved concurrently; the layout
// is never modified. A required anchor with no match yields a
// *RequiredAnchorError and a nil map. Optional anchors that match nothing
// are simply absent from the result.
func (r *Resolver) Resolve(layout *model.DocumentLayout, anchors []processor.Anchor) (map[string]model.TextBlock, error) {
	results := make([]*model.TextBlock, len(anchors))

	var g errgroup.Group
	for i, anchor := range anchors {
		i, anchor := i, anchor
		g.Go(func() error {
			block, ok := r.findAnchor(layout, anchor)
			if !ok {
				if anchor.Required {
					return &RequiredAnchorError{Anchor: anchor.Name}
				}
				r.log.Debug("optional anchor not found", zap.String("anchor", anchor.Name))
				return nil
			}
			results[i] = &block
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := make(map[string]model.TextBlock)
	for i, anchor := range anchors {
		if results[i] != nil {
			found[anchor.Name] = *results[i]
		}
	}
	r.log.Debug("anchors resolved",
		zap.Int("found", len(found)),
		zap.Int("declared", len(anchors)))
	return found, nil
}

// findAnchor tries an anchor's patterns in order and returns the first
// surviving candidate.
func (r *Resolver) findAnchor(layout *model.DocumentLayout, anchor processor.Anchor) (model.TextBlock, bool) {
	for _, pattern := range anchor.Patterns {
		var candidates []model.TextBlock

		switch anchor.PatternType {
		case processor.PatternExact:
			candidates = findExact(layout, pattern)
		case processor.PatternRegex:
			candidates = r.findRegex(layout, pattern)
		default: // contains
			candidates = findContains(layout, pattern)
		}

		// OCR often splits multi-word landmarks across blocks; retry by
		// chaining the individual words.
		if len(candidates) == 0 && anchor.PatternType != processor.PatternRegex && strings.Contains(pattern, " ") {
			candidates = r.findProximity(layout, pattern)
		}

		if len(candidates) == 0 {
			continue
		}

		if anchor.LocationHint != "" {
			candidates = filterByHint(candidates, anchor.LocationHint)
		}
		if len(candidates) > 0 {
			r.log.Debug("anchor matched",
				zap.String("anchor", anchor.Name),
				zap.String("pattern", pattern),
				zap.String("block", candidates[0].ID))
			return candidates[0], true
		}
	}

	return model.TextBlock{}, false
}

// normalize folds block text and patterns into a common comparison form:
// NFC-composed, lower-cased, surrounding space trimmed.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

func findExact(layout *model.DocumentLayout, pattern string) []model.TextBlock {
	want := normalize(pattern)
	var result []model.TextBlock
	for _, b := range layout.Blocks {
		if normalize(b.Text) == want {
			result = append(result, b)
		}
	}
	return result
}

func findContains(layout *model.DocumentLayout, pattern string) []model.TextBlock {
	want := normalize(pattern)
	var result []model.TextBlock
	for _, b := range layout.Blocks {
		if strings.Contains(normalize(b.Text), want) {
			result = append(result, b)
		}
	}
	return result
}

func (r *Resolver) findRegex(layout *model.DocumentLayout, pattern string) []model.TextBlock {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		// Load-time validation catches this for parsed processors; a
		// hand-built processor can still carry a bad pattern.
		r.log.Warn("invalid regex pattern", zap.String("pattern", pattern), zap.Error(err))
		return nil
	}

	var result []model.TextBlock
	for _, b := range layout.Blocks {
		if re.MatchString(b.Text) {
			result = append(result, b)
		}
	}
	return result
}
