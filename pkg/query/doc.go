// Package query holds the statement builders the analyzer fills in while a
// SELECT or INSERT statement is walked.
//
// A Select accumulates projections, table bindings and an optional WHERE
// condition, and owns the operand stack its expressions are built on. An
// Insert is only constructed once its target table and values check out.
package query
