package processor

import (
	"time"

	"github.com/google/uuid"
)

// PatternType selects how an anchor's patterns are matched against block text.
type PatternType string

// Supported pattern types. Matching is case-insensitive for all three.
const (
	PatternContains PatternType = "contains"
	PatternExact    PatternType = "exact"
	PatternRegex    PatternType = "regex"
)

// LocationHint disambiguates an anchor when several blocks match its pattern.
type LocationHint string

// Ordinal hints pick one occurrence (ordered by page, then y0, then x0);
// positional hints filter candidates by where they sit on the page.
const (
	HintFirstOccurrence  LocationHint = "first_occurrence"
	HintSecondOccurrence LocationHint = "second_occurrence"
	HintLastOccurrence   LocationHint = "last_occurrence"
	HintTopThird         LocationHint = "top_third"
	HintTopHalf          LocationHint = "top_half"
	HintBottomHalf       LocationHint = "bottom_half"
	HintLeftHalf         LocationHint = "left_half"
	HintRightHalf        LocationHint = "right_half"
)

// AnchorRole tags what an anchor is used for beyond being a landmark.
// Column markers (plus the optional name column) supply the header blocks
// from which table column boundaries are derived.
type AnchorRole string

// Anchor roles.
const (
	RoleLandmark     AnchorRole = "landmark"
	RoleColumnMarker AnchorRole = "column_marker"
	RoleNameColumn   AnchorRole = "name_column"
)

// RegionType describes the expected shape of a region's content.
type RegionType string

// Region types.
const (
	RegionTable    RegionType = "table"
	RegionList     RegionType = "list"
	RegionKeyValue RegionType = "key_value"
)

// Severity classifies a validation rule's failures.
type Severity string

// Severities. Error-severity failures make the overall validation fail;
// warnings are advisory.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Transform names a scalar coercion applied to an extracted value.
type Transform string

// Supported transforms. Failed coercions degrade to a default value
// (0 for numbers, "" for strings); they never abort extraction.
const (
	TransformToInt        Transform = "to_int"
	TransformToFloat      Transform = "to_float"
	TransformStrip        Transform = "strip"
	TransformUpper        Transform = "upper"
	TransformLower        Transform = "lower"
	TransformLastNameOnly Transform = "last_name_only"
)

// EndOfDocument is the sentinel end-anchor name for regions that extend to
// the bottom of the start anchor's page.
const EndOfDocument = "end_of_document"

// Anchor is a named landmark pattern to locate in a document. Anchors serve
// as spatial reference points for regions and anchor-sourced extractions.
type Anchor struct {
	// Name identifies the anchor, e.g. "away_team_header".
	Name string `json:"name"`

	// Patterns are tried in order; the first pattern that matches at
	// least one block wins.
	Patterns []string `json:"patterns"`

	// PatternType selects the matching mode. Defaults to "contains".
	PatternType PatternType `json:"pattern_type,omitempty"`

	// Role marks column-header anchors. Defaults to "landmark".
	Role AnchorRole `json:"role,omitempty"`

	// LocationHint disambiguates multiple matches, if set.
	LocationHint LocationHint `json:"location_hint,omitempty"`

	// Required makes the whole execution fail when the anchor is absent.
	Required bool `json:"required"`
}

// Region is a bounded, page-scoped subset of blocks between two anchors
// (or an anchor and the end-of-document sentinel).
type Region struct {
	Name        string     `json:"name"`
	StartAnchor string     `json:"start_anchor"`
	EndAnchor   string     `json:"end_anchor"`
	RegionType  RegionType `json:"region_type,omitempty"`
}

// ExtractionOp maps one output field path to a value derived from an
// anchor, a region, or a literal.
//
// Source grammar:
//
//	region.<name>                 whole-region text, space-joined
//	region.<name>.column[N]       column N of the region's row grid
//	anchor.<name>.text            the anchor block's own text
//	anchor.<name>.value_right     first numeric block right of the anchor
//	anchor.<name>.value_right[N]  the (N+1)-th numeric block to the right
//	literal.<text>                the text itself, verbatim
//
// Field paths are dot-separated; a segment suffixed [] denotes an ordered
// sequence of records at that level (e.g. "home_team.players[].name").
type ExtractionOp struct {
	FieldPath string    `json:"field_path"`
	Source    string    `json:"source"`
	Transform Transform `json:"transform,omitempty"`
}

// Calculation is a derived field computed from already-extracted data with
// a restricted arithmetic formula, e.g. "sum(home_team.players[].fouls)".
type Calculation struct {
	Field       string `json:"field"`
	Formula     string `json:"formula"`
	Description string `json:"description,omitempty"`
}

// Validation is a boolean predicate evaluated over the final extracted
// structure, e.g. "sum(home_team.period_scores[]) == home_team.final_score".
type Validation struct {
	Name     string   `json:"name"`
	Check    string   `json:"check"`
	Severity Severity `json:"severity,omitempty"`
}

// Processor bundles all extraction rules for one document layout family.
// It is immutable during execution.
type Processor struct {
	// Identity.
	ID           string `json:"id"`
	Name         string `json:"name"`
	DocumentType string `json:"document_type,omitempty"`

	// Routing metadata: the structural fingerprint of the layout family
	// this processor was learned from, plus identifying text patterns.
	// Both are consumed by external routing, not by execution.
	LayoutHash   string   `json:"layout_hash,omitempty"`
	TextPatterns []string `json:"text_patterns,omitempty"`

	// Extraction rules.
	Anchors       []Anchor       `json:"anchors"`
	Regions       []Region       `json:"regions,omitempty"`
	ExtractionOps []ExtractionOp `json:"extraction_ops"`
	Calculations  []Calculation  `json:"calculations,omitempty"`
	Validations   []Validation   `json:"validations,omitempty"`

	// FieldColumnMap corrects column extraction when the authored column
	// index is wrong but the header label is reliable: it maps a semantic
	// field name to the exact header text, e.g. {"fouls": "FOUL"}.
	FieldColumnMap map[string]string `json:"field_column_map,omitempty"`

	// Metadata.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// New creates an empty processor with a fresh ID and version 1.
func New(name, documentType string) *Processor {
	now := time.Now().UTC()
	return &Processor{
		ID:           uuid.NewString(),
		Name:         name,
		DocumentType: documentType,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
}

// Anchor returns the declared anchor with the given name, or nil.
func (p *Processor) Anchor(name string) *Anchor {
	for i := range p.Anchors {
		if p.Anchors[i].Name == name {
			return &p.Anchors[i]
		}
	}
	return nil
}

// Region returns the declared region with the given name, or nil.
func (p *Processor) Region(name string) *Region {
	for i := range p.Regions {
		if p.Regions[i].Name == name {
			return &p.Regions[i]
		}
	}
	return nil
}

// ColumnMarkers returns the anchors tagged as column headers, with any
// name-column anchor first so callers can treat it as column zero's header.
func (p *Processor) ColumnMarkers() []Anchor {
	var name []Anchor
	var markers []Anchor
	for _, a := range p.Anchors {
		switch a.Role {
		case RoleNameColumn:
			name = append(name, a)
		case RoleColumnMarker:
			markers = append(markers, a)
		}
	}
	return append(name, markers...)
}
