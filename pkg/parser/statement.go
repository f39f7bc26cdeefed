package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type (
	// SQL is a sequence of parsed statements.
	SQL struct {
		Statements []*Statement `parser:"@@*"`
	}

	// Statement is one of the supported statements, optionally terminated by a semicolon.
	Statement struct {
		Pos lexer.Position

		CreateTable *CreateTableStmt `parser:"( @@"`
		Select      *SelectStmt      `parser:"| @@"`
		Insert      *InsertStmt      `parser:"| @@ ) ';'?"`
	}

	// CreateTableStmt is CREATE TABLE name (column type, ...).
	CreateTableStmt struct {
		Pos lexer.Position

		Name    string       `parser:"'CREATE' 'TABLE' @Ident"`
		Columns []*ColumnDef `parser:"'(' @@ (',' @@)* ')'"`
	}

	// ColumnDef declares a column and the name of its type.
	ColumnDef struct {
		Pos lexer.Position

		Name string `parser:"@Ident"`
		Type string `parser:"@Ident"`
	}

	// SelectStmt is SELECT projections FROM tables [WHERE condition].
	SelectStmt struct {
		Pos lexer.Position

		Projections []*Projection `parser:"'SELECT' @@ (',' @@)*"`
		From        *TableClause  `parser:"@@"`
		Where       *WhereClause  `parser:"@@?"`
	}

	// Projection is a selected column: *, column or table.column, with an optional alias.
	Projection struct {
		Pos lexer.Position

		Star   bool    `parser:"( @'*'"`
		Table  *string `parser:"| (@Ident '.')?"`
		Column string  `parser:"  @Ident )"`
		Alias  *string `parser:"('AS' @Ident)?"`
	}

	// TableClause is the FROM clause.
	TableClause struct {
		Pos lexer.Position

		Tables []*TableRef `parser:"'FROM' @@ (',' @@)*"`
	}

	// TableRef names a table with an optional alias (AS is optional).
	TableRef struct {
		Pos lexer.Position

		Name  string  `parser:"@Ident"`
		Alias *string `parser:"('AS'? @Ident)?"`
	}

	// WhereClause is WHERE condition.
	WhereClause struct {
		Pos lexer.Position

		Condition *Expression `parser:"'WHERE' @@"`
	}

	// InsertStmt is INSERT INTO table (columns) VALUES (numbers).
	InsertStmt struct {
		Pos lexer.Position

		Table   string         `parser:"'INSERT' 'INTO' @Ident"`
		Columns []*Ident       `parser:"'(' @@ (',' @@)* ')'"`
		Values  []*NumberValue `parser:"'VALUES' '(' @@ (',' @@)* ')'"`
	}

	// Ident is a positioned identifier.
	Ident struct {
		Pos lexer.Position

		Name string `parser:"@Ident"`
	}

	// NumberValue is an optionally negative integer token.
	NumberValue struct {
		Pos lexer.Position

		Negative bool   `parser:"@'-'?"`
		Digits   string `parser:"@Number"`
	}
)

// String returns the projection as written, minus the alias.
func (p *Projection) String() string {
	if p.Star {
		return "*"
	}
	if p.Table != nil {
		return *p.Table + "." + p.Column
	}
	return p.Column
}

// String returns the table reference as written.
func (t *TableRef) String() string {
	if t.Alias != nil {
		return t.Name + " " + *t.Alias
	}
	return t.Name
}

// ColumnNames returns the insert's column list.
func (i *InsertStmt) ColumnNames() []string {
	names := make([]string, len(i.Columns))
	for n, col := range i.Columns {
		names[n] = col.Name
	}
	return names
}

// Text returns the literal token text including its sign.
func (n *NumberValue) Text() string {
	if n.Negative {
		return "-" + n.Digits
	}
	return n.Digits
}

// String renders the statement kind and its subject, mostly for logging.
func (s *Statement) String() string {
	switch {
	case s.CreateTable != nil:
		return "CREATE TABLE " + s.CreateTable.Name
	case s.Select != nil:
		tables := make([]string, 0, len(s.Select.From.Tables))
		for _, t := range s.Select.From.Tables {
			tables = append(tables, t.String())
		}
		return "SELECT FROM " + strings.Join(tables, ", ")
	case s.Insert != nil:
		return "INSERT INTO " + s.Insert.Table
	default:
		return ""
	}
}
