// Package formula computes derived fields from already-extracted data with
// a deliberately small arithmetic grammar:
//
//	expr   := term (("+" | "-") term)*
//	term   := factor (("*" | "/") factor)*
//	factor := number | "-" factor | "(" expr ")" | "sum" "(" path ")" | path
//
// Paths are the same dotted, []-marked field paths the extraction layer
// writes, e.g. "sum(home_team.players[].fouls)". Evaluation is total: a
// missing path counts as 0 and division by zero yields 0, both logged, so a
// sparse document degrades the derived values instead of failing the run.
// Only a formula that does not parse is rejected, and then the engine skips
// the field rather than aborting.
package formula
