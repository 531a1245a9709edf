package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Parse decodes a processor from JSON and validates it. The returned
// processor is safe to execute: its structure matched the schema, every
// region references declared anchors (or the end-of-document sentinel), and
// every regex pattern compiled.
func Parse(data []byte) (*Processor, error) {
	if err := validateAgainstSchema(data); err != nil {
		return nil, fmt.Errorf("processor spec rejected: %w", err)
	}

	var p Processor
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode processor: %w", err)
	}
	p.applyDefaults()

	if err := p.CheckIntegrity(); err != nil {
		return nil, fmt.Errorf("processor spec rejected: %w", err)
	}
	return &p, nil
}

// JSON serializes the processor for interchange. The output round-trips
// through Parse without loss.
func (p *Processor) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// applyDefaults fills enum fields left empty in the source document.
func (p *Processor) applyDefaults() {
	for i := range p.Anchors {
		if p.Anchors[i].PatternType == "" {
			p.Anchors[i].PatternType = PatternContains
		}
		if p.Anchors[i].Role == "" {
			p.Anchors[i].Role = RoleLandmark
		}
	}
	for i := range p.Regions {
		if p.Regions[i].RegionType == "" {
			p.Regions[i].RegionType = RegionTable
		}
	}
	for i := range p.Validations {
		if p.Validations[i].Severity == "" {
			p.Validations[i].Severity = SeverityError
		}
	}
	if p.Version == 0 {
		p.Version = 1
	}
}

// CheckIntegrity verifies referential integrity of the rule set: region
// anchors must be declared (the end anchor may be the sentinel), anchor
// names must be unique, and regex patterns must compile. A processor
// failing this check must not be executed.
func (p *Processor) CheckIntegrity() error {
	declared := make(map[string]bool, len(p.Anchors))
	for _, a := range p.Anchors {
		if declared[a.Name] {
			return fmt.Errorf("duplicate anchor %q", a.Name)
		}
		declared[a.Name] = true

		if a.PatternType == PatternRegex {
			for _, pat := range a.Patterns {
				if _, err := regexp.Compile("(?i)" + pat); err != nil {
					return fmt.Errorf("anchor %q: invalid regex %q: %w", a.Name, pat, err)
				}
			}
		}
	}

	seen := make(map[string]bool, len(p.Regions))
	for _, r := range p.Regions {
		if seen[r.Name] {
			return fmt.Errorf("duplicate region %q", r.Name)
		}
		seen[r.Name] = true

		if !declared[r.StartAnchor] {
			return fmt.Errorf("region %q references undeclared start anchor %q", r.Name, r.StartAnchor)
		}
		if r.EndAnchor != EndOfDocument && !declared[r.EndAnchor] {
			return fmt.Errorf("region %q references undeclared end anchor %q", r.Name, r.EndAnchor)
		}
	}

	return nil
}

// validateAgainstSchema checks the raw document against the processor JSON
// Schema.
func validateAgainstSchema(data []byte) error {
	schemaBytes, err := json.Marshal(buildJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("processor.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("processor.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return err
	}
	return nil
}
