// Package analyzer implements the semantic analysis of CREATE TABLE, SELECT
// and INSERT statements.
//
// The Analyzer is a walk.Listener. It reacts to tree-walk events in the order
// the walker delivers them, resolving tables against the catalog, type names
// against the type registry and expressions on the current query's operand
// stack. Every problem it finds is recorded in its diagnostic sink; analysis
// never stops because of one. The statement that failed is abandoned at the
// point of failure and the following statements are analyzed as usual.
//
// Example usage:
//
//	sql, errs := parser.ParseString("schema.sql", input)
//
//	a := analyzer.New(analyzer.Params{})
//	walk.Errors(errs, a)
//	walk.Walk(sql, a)
//
//	if a.HasErrors() {
//		fmt.Print(a.Report())
//	}
package analyzer
