// Package processor defines the declarative extraction specification: named
// anchors, bounded regions, field extraction operations, derived-field
// calculations, and validation rules, bundled into a Processor.
//
// A Processor is authored once (by a human or an external rule-synthesis
// step) and is read-only during execution. Loading a processor from JSON
// validates it twice: first against a JSON Schema for structural problems,
// then for referential integrity (every region must reference declared
// anchors or the end-of-document sentinel). A spec failing either check is
// rejected before any execution begins.
package processor
