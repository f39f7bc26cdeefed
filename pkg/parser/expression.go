package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type (
	// Expression is the loosest-binding level: an additive expression optionally
	// compared with another one.
	Expression struct {
		Pos lexer.Position

		Left *Additive       `parser:"@@"`
		Rest *RelationalRest `parser:"@@?"`
	}

	RelationalRest struct {
		Pos lexer.Position

		Op    string    `parser:"@('=' | '<>' | '!=' | '<=' | '>=' | '<' | '>')"`
		Right *Additive `parser:"@@"`
	}

	// Additive handles +, - and OR.
	Additive struct {
		Pos lexer.Position

		Left *Term           `parser:"@@"`
		Rest []*AdditiveRest `parser:"@@*"`
	}

	AdditiveRest struct {
		Pos lexer.Position

		Op    string `parser:"@('+' | '-' | 'OR')"`
		Right *Term  `parser:"@@"`
	}

	// Term handles *, /, % and AND.
	Term struct {
		Pos lexer.Position

		Left *Factor     `parser:"@@"`
		Rest []*TermRest `parser:"@@*"`
	}

	TermRest struct {
		Pos lexer.Position

		Op    string  `parser:"@('*' | '/' | '%' | 'AND')"`
		Right *Factor `parser:"@@"`
	}

	// Factor is the tightest-binding level.
	Factor struct {
		Pos lexer.Position

		Paren   *Expression `parser:"'(' @@ ')'"`
		Boolean *string     `parser:"| @('TRUE' | 'FALSE')"`
		Number  *string     `parser:"| @Number"`
		Column  *ColumnRef  `parser:"| @@"`
	}

	// ColumnRef is column or table.column.
	ColumnRef struct {
		Pos lexer.Position

		Table *string `parser:"(@Ident '.')?"`
		Name  string  `parser:"@Ident"`
	}
)

func (e *Expression) String() string {
	if e.Rest == nil {
		return e.Left.String()
	}
	return e.Left.String() + " " + e.Rest.Op + " " + e.Rest.Right.String()
}

func (a *Additive) String() string {
	var sb strings.Builder
	sb.WriteString(a.Left.String())
	for _, rest := range a.Rest {
		sb.WriteString(" " + strings.ToUpper(rest.Op) + " " + rest.Right.String())
	}
	return sb.String()
}

func (t *Term) String() string {
	var sb strings.Builder
	sb.WriteString(t.Left.String())
	for _, rest := range t.Rest {
		sb.WriteString(" " + strings.ToUpper(rest.Op) + " " + rest.Right.String())
	}
	return sb.String()
}

func (f *Factor) String() string {
	switch {
	case f.Paren != nil:
		return "(" + f.Paren.String() + ")"
	case f.Boolean != nil:
		return strings.ToUpper(*f.Boolean)
	case f.Number != nil:
		return *f.Number
	case f.Column != nil:
		return f.Column.String()
	default:
		return ""
	}
}

func (c *ColumnRef) String() string {
	if c.Table != nil {
		return *c.Table + "." + c.Name
	}
	return c.Name
}
