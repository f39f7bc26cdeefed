// Package walk drives a Listener over parsed statements, emitting enter/exit
// events in document order.
//
// Exit events fire only after every event of the node's children, so a
// listener can build results bottom-up. Left-associative operator chains are
// folded into nested binary nodes: "a + b - c" produces the events
// leaf(a), leaf(b), binary(+), leaf(c), binary(-).
package walk

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pseudomuto/sqlcheck/pkg/parser"
)

type (
	// Binary is a binary operator application whose operands were already walked.
	Binary struct {
		Pos    lexer.Position
		Symbol string
	}

	// Listener receives walk events.
	Listener interface {
		EnterCreateTable(*parser.CreateTableStmt)
		ExitColumnDef(*parser.ColumnDef)
		ExitCreateTable(*parser.CreateTableStmt)

		EnterSelect(*parser.SelectStmt)
		ExitProjection(*parser.Projection)
		ExitTableClause(*parser.TableClause)
		ExitWhereClause(*parser.WhereClause)
		ExitSelect(*parser.SelectStmt)

		// ExitBinary fires after both operands of an operator were walked.
		ExitBinary(*Binary)
		// ExitParen fires for a parenthesized factor after its inner expression.
		ExitParen(*parser.Factor)
		// ExitLeaf fires for a factor without sub-expressions: a column
		// reference or a literal.
		ExitLeaf(*parser.Factor)

		ExitInsert(*parser.InsertStmt)

		SyntaxError(parser.SyntaxError)
	}

	// BaseListener implements Listener with no-ops. Embed it to handle only
	// the events you care about.
	BaseListener struct{}
)

func (BaseListener) EnterCreateTable(*parser.CreateTableStmt) {}
func (BaseListener) ExitColumnDef(*parser.ColumnDef)          {}
func (BaseListener) ExitCreateTable(*parser.CreateTableStmt)  {}
func (BaseListener) EnterSelect(*parser.SelectStmt)           {}
func (BaseListener) ExitProjection(*parser.Projection)        {}
func (BaseListener) ExitTableClause(*parser.TableClause)      {}
func (BaseListener) ExitWhereClause(*parser.WhereClause)      {}
func (BaseListener) ExitSelect(*parser.SelectStmt)            {}
func (BaseListener) ExitBinary(*Binary)                       {}
func (BaseListener) ExitParen(*parser.Factor)                 {}
func (BaseListener) ExitLeaf(*parser.Factor)                  {}
func (BaseListener) ExitInsert(*parser.InsertStmt)            {}
func (BaseListener) SyntaxError(parser.SyntaxError)           {}

// Walk emits the events of every statement in sql, in order.
func Walk(sql *parser.SQL, l Listener) {
	for _, stmt := range sql.Statements {
		Statement(stmt, l)
	}
}

// Errors forwards syntax errors to l.
func Errors(errs []parser.SyntaxError, l Listener) {
	for _, e := range errs {
		l.SyntaxError(e)
	}
}

// Statement emits the events of a single statement.
func Statement(stmt *parser.Statement, l Listener) {
	switch {
	case stmt.CreateTable != nil:
		createTable(stmt.CreateTable, l)
	case stmt.Select != nil:
		selectStmt(stmt.Select, l)
	case stmt.Insert != nil:
		l.ExitInsert(stmt.Insert)
	}
}

// Expression emits the events of an expression tree.
func Expression(e *parser.Expression, l Listener) {
	additive(e.Left, l)
	if e.Rest != nil {
		additive(e.Rest.Right, l)
		l.ExitBinary(&Binary{Pos: e.Rest.Pos, Symbol: e.Rest.Op})
	}
}

func createTable(stmt *parser.CreateTableStmt, l Listener) {
	l.EnterCreateTable(stmt)
	for _, col := range stmt.Columns {
		l.ExitColumnDef(col)
	}
	l.ExitCreateTable(stmt)
}

func selectStmt(stmt *parser.SelectStmt, l Listener) {
	l.EnterSelect(stmt)
	for _, p := range stmt.Projections {
		l.ExitProjection(p)
	}

	l.ExitTableClause(stmt.From)

	if stmt.Where != nil {
		Expression(stmt.Where.Condition, l)
		l.ExitWhereClause(stmt.Where)
	}

	l.ExitSelect(stmt)
}

func additive(a *parser.Additive, l Listener) {
	term(a.Left, l)
	for _, rest := range a.Rest {
		term(rest.Right, l)
		l.ExitBinary(&Binary{Pos: rest.Pos, Symbol: strings.ToUpper(rest.Op)})
	}
}

func term(t *parser.Term, l Listener) {
	factor(t.Left, l)
	for _, rest := range t.Rest {
		factor(rest.Right, l)
		l.ExitBinary(&Binary{Pos: rest.Pos, Symbol: strings.ToUpper(rest.Op)})
	}
}

func factor(f *parser.Factor, l Listener) {
	if f.Paren != nil {
		Expression(f.Paren, l)
		l.ExitParen(f)
		return
	}
	l.ExitLeaf(f)
}
