// Package parser provides a participle-based parser for the SQL subset sqlcheck
// analyzes: CREATE TABLE, SELECT and INSERT statements.
//
// The grammar encodes operator precedence structurally. From loosest to
// tightest binding:
//
//  1. Relational (=, <>, !=, <, >, <=, >=), non-associative
//  2. Additive (+, -, OR), left-associative
//  3. Multiplicative (*, /, %, AND), left-associative
//  4. Factors (parenthesized expressions, column references, TRUE/FALSE, numbers)
//
// Parsing recovers at statement boundaries: input is split on top-level
// semicolons, every statement is parsed on its own, and a statement with a
// syntax error is reported and skipped without affecting the ones after it.
// Every node carries its source position.
//
// Example usage:
//
//	sql, errs := parser.ParseString("schema.sql", `
//		CREATE TABLE users (id integer, active boolean);
//		SELECT u.id FROM users u WHERE u.active AND u.id > 10;
//		INSERT INTO users (id) VALUES (42);
//	`)
//	for _, e := range errs {
//		fmt.Println(e)
//	}
//
//	for _, stmt := range sql.Statements {
//		if stmt.CreateTable != nil {
//			fmt.Printf("CREATE TABLE %s (%d columns)\n", stmt.CreateTable.Name, len(stmt.CreateTable.Columns))
//		}
//	}
package parser
