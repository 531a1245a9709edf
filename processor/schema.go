package processor

// buildJSONSchema returns the JSON-Schema (draft 2020-12 subset) a processor
// document must satisfy, as a generic map. It is compiled once per load and
// catches structural problems (missing names, bad enum values) before the
// referential-integrity pass runs.
func buildJSONSchema() map[string]any {
	anchor := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     map[string]any{"type": "string", "minLength": 1},
			"patterns": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
			"pattern_type": map[string]any{
				"type": "string",
				"enum": []string{"contains", "exact", "regex"},
			},
			"role": map[string]any{
				"type": "string",
				"enum": []string{"landmark", "column_marker", "name_column"},
			},
			"location_hint": map[string]any{
				"type": "string",
				"enum": []string{
					"first_occurrence", "second_occurrence", "last_occurrence",
					"top_third", "top_half", "bottom_half", "left_half", "right_half",
				},
			},
			"required": map[string]any{"type": "boolean"},
		},
		"required": []string{"name", "patterns"},
	}

	region := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":         map[string]any{"type": "string", "minLength": 1},
			"start_anchor": map[string]any{"type": "string", "minLength": 1},
			"end_anchor":   map[string]any{"type": "string", "minLength": 1},
			"region_type": map[string]any{
				"type": "string",
				"enum": []string{"table", "list", "key_value"},
			},
		},
		"required": []string{"name", "start_anchor", "end_anchor"},
	}

	extractionOp := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"field_path": map[string]any{"type": "string", "minLength": 1},
			"source":     map[string]any{"type": "string", "minLength": 1},
			"transform": map[string]any{
				"type": "string",
				"enum": []string{"to_int", "to_float", "strip", "upper", "lower", "last_name_only"},
			},
		},
		"required": []string{"field_path", "source"},
	}

	calculation := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"field":       map[string]any{"type": "string", "minLength": 1},
			"formula":     map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
		},
		"required": []string{"field", "formula"},
	}

	validation := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string", "minLength": 1},
			"check": map[string]any{"type": "string", "minLength": 1},
			"severity": map[string]any{
				"type": "string",
				"enum": []string{"error", "warning"},
			},
		},
		"required": []string{"name", "check"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":            map[string]any{"type": "string"},
			"name":          map[string]any{"type": "string", "minLength": 1},
			"document_type": map[string]any{"type": "string"},
			"layout_hash":   map[string]any{"type": "string"},
			"text_patterns": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"anchors":       map[string]any{"type": "array", "items": anchor},
			"regions":       map[string]any{"type": "array", "items": region},
			"extraction_ops": map[string]any{
				"type":  "array",
				"items": extractionOp,
			},
			"calculations": map[string]any{"type": "array", "items": calculation},
			"validations":  map[string]any{"type": "array", "items": validation},
			"field_column_map": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"created_at": map[string]any{"type": "string"},
			"updated_at": map[string]any{"type": "string"},
			"version":    map[string]any{"type": "integer", "minimum": 1},
		},
		"required": []string{"name", "anchors", "extraction_ops"},
	}
}
