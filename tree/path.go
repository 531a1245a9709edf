package tree

import (
	"fmt"
	"strings"
)

// Segment is one element of a dotted field path. IsArray marks segments
// written with a [] suffix, denoting an ordered sequence of records.
type Segment struct {
	Name    string
	IsArray bool
}

// ParsePath splits a dotted field path into segments.
// "home_team.players[].name" parses to [home_team, players(array), name].
func ParsePath(path string) []Segment {
	parts := strings.Split(path, ".")
	segments := make([]Segment, 0, len(parts))
	for _, p := range parts {
		if name, ok := strings.CutSuffix(p, "[]"); ok {
			segments = append(segments, Segment{Name: name, IsArray: true})
		} else {
			segments = append(segments, Segment{Name: p})
		}
	}
	return segments
}

// Write assigns a value into the tree at the given field path, creating
// intermediate containers as needed.
//
// Walking all but the last segment: a plain segment descends into a map
// entry (created if absent); an array segment ensures a sequence exists,
// grows it with empty records to match an incoming list value's length, and
// descends into the sequence itself, so later segments target its elements.
//
// At the last segment: when the current container is a sequence, a list
// value is distributed positionally (element i receives value[i] under the
// field name) and a scalar value is broadcast to every element; when the
// container is a map, the field is simply set. A trailing array segment
// stores the value as a sequence, wrapping a scalar into one element.
//
// Alignment between successive writes into the same sequence is purely
// positional; see the package comment.
func Write(root *Value, path string, value any) error {
	if root == nil || root.Kind() != KindMap {
		return fmt.Errorf("write %q: root must be a map", path)
	}

	segments := ParsePath(path)
	if len(segments) == 0 || segments[0].Name == "" {
		return fmt.Errorf("write %q: empty field path", path)
	}

	list, isList := value.([]any)

	current := root
	for _, seg := range segments[:len(segments)-1] {
		if current.Kind() == KindSequence {
			// Descending through a sequence with a further segment has no
			// defined target element.
			return fmt.Errorf("write %q: cannot descend into sequence at %q", path, seg.Name)
		}

		child, ok := current.Field(seg.Name)
		if seg.IsArray {
			if !ok {
				child = NewSequence()
				current.SetField(seg.Name, child)
			}
			if child.Kind() != KindSequence {
				return fmt.Errorf("write %q: %q already holds a %s, not a sequence", path, seg.Name, child.Kind())
			}
			if isList {
				child.Grow(len(list))
			}
		} else {
			if !ok {
				child = NewMap()
				current.SetField(seg.Name, child)
			}
			if child.Kind() != KindMap {
				return fmt.Errorf("write %q: %q already holds a %s, not a map", path, seg.Name, child.Kind())
			}
		}
		current = child
	}

	last := segments[len(segments)-1]

	if last.IsArray {
		if current.Kind() == KindSequence {
			distribute(current, last.Name, list, isList, value)
			return nil
		}
		// Map container: store the value itself as a sequence.
		seq := NewSequence()
		if isList {
			for _, item := range list {
				seq.Append(FromAny(item))
			}
		} else {
			seq.Append(FromAny(value))
		}
		current.SetField(last.Name, seq)
		return nil
	}

	if current.Kind() == KindSequence {
		distribute(current, last.Name, list, isList, value)
		return nil
	}

	current.SetField(last.Name, FromAny(value))
	return nil
}

// distribute writes a value across a sequence's records: list values go
// element-by-element, scalars are broadcast to every record.
func distribute(seq *Value, field string, list []any, isList bool, value any) {
	for i, item := range seq.Items() {
		if item.Kind() != KindMap {
			continue
		}
		if isList {
			if i < len(list) {
				item.SetField(field, FromAny(list[i]))
			}
		} else {
			item.SetField(field, FromAny(value))
		}
	}
}

// Lookup walks a field path through the tree without modifying it. Array
// segments select the sequence held at that name; the walk does not index
// into elements. It returns the value at the path, or false if any segment
// is absent.
func Lookup(root *Value, path string) (*Value, bool) {
	current := root
	for _, seg := range ParsePath(path) {
		if current == nil || current.Kind() != KindMap {
			return nil, false
		}
		child, ok := current.Field(seg.Name)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

// Collect gathers every value reachable at the path, fanning out across
// sequences: "players[].fouls" yields one value per record carrying the
// field, in record order. A path ending on a sequence yields its elements.
// Records missing the field contribute nothing.
func Collect(root *Value, path string) []*Value {
	return collect(root, ParsePath(path))
}

func collect(v *Value, segs []Segment) []*Value {
	if v == nil {
		return nil
	}

	if len(segs) == 0 {
		if v.Kind() == KindSequence {
			var out []*Value
			for _, item := range v.Items() {
				out = append(out, collect(item, nil)...)
			}
			return out
		}
		return []*Value{v}
	}

	switch v.Kind() {
	case KindMap:
		child, ok := v.Field(segs[0].Name)
		if !ok {
			return nil
		}
		return collect(child, segs[1:])
	case KindSequence:
		var out []*Value
		for _, item := range v.Items() {
			out = append(out, collect(item, segs)...)
		}
		return out
	}
	return nil
}
