package extract

import (
	"reflect"
	"testing"

	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/processor"
)

func makeBlock(id, text string, x0, y0 float64, page int) model.TextBlock {
	bt := model.BlockText
	if (model.TextBlock{Text: text}).IsNumeric() {
		bt = model.BlockNumber
	}
	return model.TextBlock{
		ID:        id,
		Text:      text,
		BBox:      model.BoundingBox{X0: x0, Y0: y0, X1: x0 + 0.05, Y1: y0 + 0.02, Page: page},
		BlockType: bt,
	}
}

// tableInput builds an Input with three header anchors (Name, Pts, Fouls)
// and a two-row "players" region:
//
//	John  10  2
//	Mary   8  1
func tableInput() *Input {
	nameHdr := makeBlock("h0", "Name", 0.05, 0.10, 0)
	ptsHdr := makeBlock("h1", "Pts", 0.30, 0.10, 0)
	foulsHdr := makeBlock("h2", "Fouls", 0.55, 0.10, 0)

	rows := []model.TextBlock{
		makeBlock("r0c0", "John", 0.05, 0.20, 0),
		makeBlock("r0c1", "10", 0.30, 0.20, 0),
		makeBlock("r0c2", "2", 0.55, 0.20, 0),
		makeBlock("r1c0", "Mary", 0.05, 0.25, 0),
		makeBlock("r1c1", "8", 0.30, 0.25, 0),
		makeBlock("r1c2", "1", 0.55, 0.25, 0),
	}

	return &Input{
		Layout: &model.DocumentLayout{PageCount: 1},
		Anchors: map[string]model.TextBlock{
			"name_col":  nameHdr,
			"pts_col":   ptsHdr,
			"fouls_col": foulsHdr,
		},
		Regions: map[string][]model.TextBlock{"players": rows},
		ColumnMarkers: []processor.Anchor{
			{Name: "name_col", Role: processor.RoleNameColumn},
			{Name: "pts_col", Role: processor.RoleColumnMarker},
			{Name: "fouls_col", Role: processor.RoleColumnMarker},
		},
	}
}

func TestExtract_ColumnByIndex(t *testing.T) {
	e := NewExtractor(nil)
	in := tableInput()

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "players[].name",
		Source:    "region.players.column[0]",
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := []any{"John", "Mary"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("column[0] = %v, want %v", got, want)
	}
}

func TestExtract_HeaderLabelOverridesIndex(t *testing.T) {
	e := NewExtractor(nil)
	in := tableInput()
	in.FieldColumnMap = map[string]string{"fouls": "Fouls"}

	// The authored index points at the Pts column; the header mapping must
	// redirect the read to the Fouls column.
	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "players[].fouls",
		Source:    "region.players.column[1]",
		Transform: processor.TransformToInt,
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := []any{2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("corrected column = %v, want %v", got, want)
	}
}

func TestExtract_UnmappedLabelFallsBackToIndex(t *testing.T) {
	e := NewExtractor(nil)
	in := tableInput()
	in.FieldColumnMap = map[string]string{"fouls": "Turnovers"}

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "players[].fouls",
		Source:    "region.players.column[2]",
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := []any{"2", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback column = %v, want %v", got, want)
	}
}

func TestExtract_EmptyCellsPreserveRowAlignment(t *testing.T) {
	e := NewExtractor(nil)
	in := tableInput()
	// Three name rows, but only the first and third have a Pts block.
	in.Regions["players"] = []model.TextBlock{
		makeBlock("r0c0", "John", 0.05, 0.20, 0),
		makeBlock("r0c1", "10", 0.30, 0.20, 0),
		makeBlock("r1c0", "Mary", 0.05, 0.25, 0),
		makeBlock("r2c0", "Pat", 0.05, 0.30, 0),
		makeBlock("r2c1", "7", 0.30, 0.30, 0),
	}

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "players[].pts",
		Source:    "region.players.column[1]",
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := []any{"10", "", "7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows with no cell must yield empty strings: got %v, want %v", got, want)
	}
}

func TestExtract_FirstRowHeaderFallback(t *testing.T) {
	e := NewExtractor(nil)
	in := tableInput()
	// No column markers: the region's own first row becomes the header and
	// is excluded from the data rows.
	in.ColumnMarkers = nil
	in.Regions["players"] = append([]model.TextBlock{
		makeBlock("hdr0", "Name", 0.05, 0.15, 0),
		makeBlock("hdr1", "Pts", 0.30, 0.15, 0),
		makeBlock("hdr2", "Fouls", 0.55, 0.15, 0),
	}, in.Regions["players"]...)

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "players[].pts",
		Source:    "region.players.column[1]",
		Transform: processor.TransformToInt,
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := []any{10, 8}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("first-row header fallback = %v, want %v", got, want)
	}
}

func TestExtract_ScalarPathTakesFirstRow(t *testing.T) {
	e := NewExtractor(nil)
	in := tableInput()

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "top_scorer",
		Source:    "region.players.column[0]",
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != "John" {
		t.Errorf("scalar path = %v, want %q", got, "John")
	}
}

func TestExtract_WholeRegion(t *testing.T) {
	e := NewExtractor(nil)
	in := &Input{
		Layout: &model.DocumentLayout{PageCount: 1},
		Regions: map[string][]model.TextBlock{
			"notes": {
				makeBlock("b0", "Game", 0.05, 0.1, 0),
				makeBlock("b1", "called", 0.15, 0.1, 0),
				makeBlock("b2", "early", 0.25, 0.1, 0),
			},
		},
	}

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "notes",
		Source:    "region.notes",
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != "Game called early" {
		t.Errorf("whole region = %v", got)
	}
}

func TestExtract_MissingRegionYieldsNil(t *testing.T) {
	e := NewExtractor(nil)
	in := &Input{Layout: &model.DocumentLayout{PageCount: 1}}

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "notes",
		Source:    "region.notes",
	})
	if err != nil {
		t.Fatalf("missing region must not be an error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing region, got %v", got)
	}
}

func TestExtract_AnchorText(t *testing.T) {
	e := NewExtractor(nil)
	in := &Input{
		Layout: &model.DocumentLayout{PageCount: 1},
		Anchors: map[string]model.TextBlock{
			"coach": makeBlock("b0", "Coach Jane Smith", 0.05, 0.1, 0),
		},
	}

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "coach",
		Source:    "anchor.coach.text",
		Transform: processor.TransformLastNameOnly,
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != "Smith" {
		t.Errorf("anchor text = %v, want %q", got, "Smith")
	}
}

func TestExtract_ValueRight(t *testing.T) {
	anchor := makeBlock("a0", "Final Score:", 0.10, 0.50, 0)
	layout := &model.DocumentLayout{
		PageCount: 1,
		Blocks: []model.TextBlock{
			anchor,
			makeBlock("left", "12", 0.02, 0.50, 0),      // left of the anchor
			makeBlock("v0", "98", 0.20, 0.50, 0),        // first value
			makeBlock("word", "Eagles", 0.28, 0.50, 0),  // not numeric
			makeBlock("v1", "45", 0.40, 0.50, 0),        // second value
			makeBlock("far", "7", 0.60, 0.50, 0),        // beyond MaxValueDistance
			makeBlock("offrow", "99", 0.20, 0.56, 0),    // different row
		},
	}
	in := &Input{
		Layout:  layout,
		Anchors: map[string]model.TextBlock{"score_label": anchor},
	}
	e := NewExtractor(nil)

	tests := []struct {
		source string
		want   any
	}{
		{"anchor.score_label.value_right", 98},
		{"anchor.score_label.value_right[0]", 98},
		{"anchor.score_label.value_right[1]", 45},
		{"anchor.score_label.value_right[2]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := e.Extract(in, processor.ExtractionOp{
				FieldPath: "score",
				Source:    tt.source,
				Transform: processor.TransformToInt,
			})
			if err != nil {
				t.Fatalf("extract failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_Literal(t *testing.T) {
	e := NewExtractor(nil)
	in := &Input{Layout: &model.DocumentLayout{PageCount: 1}}

	got, err := e.Extract(in, processor.ExtractionOp{
		FieldPath: "league",
		Source:    "literal.City League",
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != "City League" {
		t.Errorf("literal = %v", got)
	}
}

func TestExtract_MalformedSources(t *testing.T) {
	e := NewExtractor(nil)
	in := tableInput()

	bad := []string{
		"region",
		"blob.players",
		"region.players.rows[0]",
		"region.players.column[x]",
		"region.players.column[-1]",
		"anchor.pts_col.value_left",
	}
	for _, source := range bad {
		if _, err := e.Extract(in, processor.ExtractionOp{FieldPath: "f", Source: source}); err == nil {
			t.Errorf("source %q: expected error", source)
		}
	}
}

func TestApplyTransforms(t *testing.T) {
	tests := []struct {
		transform processor.Transform
		in        string
		want      any
	}{
		{processor.TransformToInt, " 42 ", 42},
		{processor.TransformToInt, "not a number", 0},
		{processor.TransformToInt, "", 0},
		{processor.TransformToFloat, "3.5", 3.5},
		{processor.TransformToFloat, "junk", 0.0},
		{processor.TransformStrip, "  hi  ", "hi"},
		{processor.TransformUpper, "eagles", "EAGLES"},
		{processor.TransformLower, "EAGLES", "eagles"},
		{processor.TransformLastNameOnly, "John Q. Smith", "Smith"},
		{processor.TransformLastNameOnly, "", ""},
		{"", "as is", "as is"},
	}
	for _, tt := range tests {
		if got := Apply(tt.in, tt.transform); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Apply(%q, %q) = %v (%T), want %v (%T)", tt.in, tt.transform, got, got, tt.want, tt.want)
		}
	}
}

func TestClusterRows(t *testing.T) {
	blocks := []model.TextBlock{
		makeBlock("b3", "second-row", 0.05, 0.30, 0),
		makeBlock("b0", "a", 0.05, 0.100, 0),
		makeBlock("b1", "b", 0.30, 0.108, 0), // within tolerance of b0
		makeBlock("b2", "c", 0.55, 0.104, 0),
	}

	rows := clusterRows(blocks, 0.015)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 3 {
		t.Fatalf("expected 3 blocks in first row, got %d", len(rows[0]))
	}
	// Left-to-right inside the row.
	if rows[0][0].ID != "b0" || rows[0][1].ID != "b1" || rows[0][2].ID != "b2" {
		t.Errorf("first row out of order: %v", rows[0])
	}
	if rows[1][0].ID != "b3" {
		t.Errorf("expected b3 in second row, got %v", rows[1])
	}
}
