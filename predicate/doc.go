// Package predicate evaluates validation checks over an extracted-data tree.
//
// A check is a boolean expression in a restricted grammar: comparisons
// (==, !=, <, <=, >, >=), the connectives and/or/not, arithmetic, numeric
// and string and boolean literals, dotted field paths, and a small helper
// set (sum, len, min, max, all, any, abs, round) whose path-taking forms fan
// out across sequences the same way extraction paths do.
//
// Evaluation is strict about data presence: a path that resolves to nothing
// is an evaluation error, which fails that rule, because a validation that
// silently passes on missing data defeats its purpose. The exceptions are
// len, which counts a missing path as 0 so emptiness itself can be checked,
// and any, which is false over nothing. Every rule is always evaluated; one
// failing rule never short-circuits the rest.
package predicate
