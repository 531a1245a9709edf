package region

import (
	"testing"

	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/processor"
)

func makeBlock(id, text string, x0, y0 float64, page int) model.TextBlock {
	return model.TextBlock{
		ID:        id,
		Text:      text,
		BBox:      model.BoundingBox{X0: x0, Y0: y0, X1: x0 + 0.05, Y1: y0 + 0.02, Page: page},
		BlockType: model.BlockText,
	}
}

func TestResolver_BlocksBetweenAnchors(t *testing.T) {
	start := makeBlock("start", "AWAY TEAM", 0.1, 0.10, 0)
	end := makeBlock("end", "TOTALS", 0.1, 0.50, 0)
	layout := &model.DocumentLayout{
		PageCount: 2,
		Blocks: []model.TextBlock{
			start,
			makeBlock("row2b", "10", 0.30, 0.30, 0), // declared before row2a on purpose
			makeBlock("row1", "Johnson", 0.05, 0.20, 0),
			makeBlock("row2a", "Smith", 0.05, 0.30, 0),
			end,
			makeBlock("after", "below totals", 0.05, 0.70, 0),
			makeBlock("otherpage", "Smith", 0.05, 0.30, 1),
		},
	}

	r := NewResolver(nil)
	regions := r.Resolve(layout, map[string]model.TextBlock{
		"start": start,
		"end":   end,
	}, []processor.Region{
		{Name: "players", StartAnchor: "start", EndAnchor: "end", RegionType: processor.RegionTable},
	})

	blocks, ok := regions["players"]
	if !ok {
		t.Fatal("expected region to resolve")
	}
	// The interval [start.y1, end.y0] is closed: the end anchor's own row
	// is included, the start anchor's row is not.
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}

	want := []string{"row1", "row2a", "row2b", "end"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q (all: %v)", i, want[i], ids[i], ids)
		}
	}
}

func TestResolver_EndOfDocumentSentinel(t *testing.T) {
	start := makeBlock("start", "Honor Roll", 0.1, 0.10, 0)
	layout := &model.DocumentLayout{
		PageCount: 1,
		Blocks: []model.TextBlock{
			makeBlock("above", "Masthead", 0.1, 0.02, 0),
			start,
			makeBlock("b1", "Alice Adams", 0.05, 0.30, 0),
			makeBlock("b2", "Bob Brown", 0.05, 0.90, 0),
		},
	}

	r := NewResolver(nil)
	regions := r.Resolve(layout, map[string]model.TextBlock{"start": start}, []processor.Region{
		{Name: "names", StartAnchor: "start", EndAnchor: processor.EndOfDocument},
	})

	blocks := regions["names"]
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks to end of page, got %d", len(blocks))
	}
	if blocks[0].ID != "b1" || blocks[1].ID != "b2" {
		t.Errorf("unexpected blocks: %v, %v", blocks[0].ID, blocks[1].ID)
	}
}

func TestResolver_MissingAnchorOmitsRegion(t *testing.T) {
	start := makeBlock("start", "AWAY", 0.1, 0.10, 0)
	layout := &model.DocumentLayout{PageCount: 1, Blocks: []model.TextBlock{start}}

	r := NewResolver(nil)
	regions := r.Resolve(layout, map[string]model.TextBlock{"start": start}, []processor.Region{
		{Name: "players", StartAnchor: "start", EndAnchor: "totals"},
		{Name: "ghost", StartAnchor: "nowhere", EndAnchor: processor.EndOfDocument},
	})

	if _, ok := regions["players"]; ok {
		t.Error("region with unresolved end anchor should be omitted")
	}
	if _, ok := regions["ghost"]; ok {
		t.Error("region with unresolved start anchor should be omitted")
	}
}

func TestResolver_CrossPageAnchorsYieldEmptyRegion(t *testing.T) {
	start := makeBlock("start", "AWAY", 0.1, 0.10, 0)
	end := makeBlock("end", "TOTALS", 0.1, 0.50, 1)
	layout := &model.DocumentLayout{
		PageCount: 2,
		Blocks: []model.TextBlock{
			start,
			makeBlock("mid", "Johnson", 0.05, 0.30, 0),
			end,
		},
	}

	r := NewResolver(nil)
	regions := r.Resolve(layout, map[string]model.TextBlock{"start": start, "end": end}, []processor.Region{
		{Name: "players", StartAnchor: "start", EndAnchor: "end"},
	})

	if blocks := regions["players"]; len(blocks) != 0 {
		t.Errorf("regions never span pages; expected empty, got %d blocks", len(blocks))
	}
}
