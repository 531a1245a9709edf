// Package tree provides the dynamically-shaped output structure that
// extraction builds, and the path writer that assigns values into it.
//
// The structure is a tagged variant: a Value is exactly one of a scalar, a
// map of named child values, or an ordered sequence of child values. No
// fixed schema exists; the shape is implied entirely by the field paths the
// processor declares. A path like "home_team.players[].name" creates a map
// entry "home_team" holding a sequence of records, each with a "name" field.
//
// # Positional alignment
//
// Sequences built by successive writes have no join key: alignment across
// writes is purely positional. Extraction ops that target the same array
// (players[].name, then players[].fouls) MUST produce their per-row values
// in the same row order, or records are silently mis-joined. This is a
// documented contract for processor authors, not a defect the writer can
// detect.
package tree
