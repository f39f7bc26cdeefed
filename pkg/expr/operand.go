package expr

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/types"
)

// ErrIntegerLiteral is returned when a numeric token is not a valid 64-bit integer.
var ErrIntegerLiteral = errors.New("invalid integer literal")

type (
	// Node is the expression an Operand was built from.
	Node interface {
		String() string
		node()
	}

	// Operand is an immutable typed expression.
	Operand struct {
		Type *types.Type
		Node Node
	}

	// Literal is a constant value: int64 or bool.
	Literal struct {
		Value any
	}

	// ColumnRef is a resolved reference to a column of a bound table. Table is
	// the name the table is bound under in the query (its alias when one exists).
	ColumnRef struct {
		Table  string
		Column string
	}

	// Binary is an operator applied to two operands.
	Binary struct {
		Op    Operator
		Left  *Operand
		Right *Operand
	}

	// Invalid stands in for an expression that could not be built.
	Invalid struct{}
)

func (Literal) node()   {}
func (ColumnRef) node() {}
func (Binary) node()    {}
func (Invalid) node()   {}

func (l Literal) String() string {
	switch v := l.Value.(type) {
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return "?"
	}
}

func (c ColumnRef) String() string {
	if c.Table == "" {
		return c.Column
	}
	return c.Table + "." + c.Column
}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.Symbol + " " + b.Right.String() + ")"
}

func (Invalid) String() string {
	return "<invalid>"
}

// String renders the operand's expression.
func (o *Operand) String() string {
	if o == nil || o.Node == nil {
		return "<nil>"
	}
	return o.Node.String()
}

// Bool returns a boolean literal operand.
func Bool(v bool) *Operand {
	return &Operand{Type: types.Boolean, Node: Literal{Value: v}}
}

// Int parses a numeric token into an integer literal operand.
func Int(token string) (*Operand, error) {
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrIntegerLiteral, "%s", token)
	}

	return &Operand{Type: types.Integer, Node: Literal{Value: v}}, nil
}

// NewColumnRef returns an operand referencing a column of a bound table.
func NewColumnRef(table, column string, typ *types.Type) *Operand {
	return &Operand{Type: typ, Node: ColumnRef{Table: table, Column: column}}
}

// NewInvalid returns the placeholder operand for an expression that already
// produced a diagnostic.
func NewInvalid() *Operand {
	return &Operand{Type: types.Invalid, Node: Invalid{}}
}
