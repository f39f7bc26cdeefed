package expr

import (
	"strings"

	"github.com/pseudomuto/sqlcheck/pkg/types"
)

// Kind classifies an operator by the typing rule it follows.
type Kind int

const (
	Arithmetic Kind = iota + 1
	Relational
	Boolean
)

// Operator is a binary operator and its kind.
type Operator struct {
	Kind   Kind
	Symbol string
}

var operators = map[string]Kind{
	"*":   Arithmetic,
	"/":   Arithmetic,
	"%":   Arithmetic,
	"+":   Arithmetic,
	"-":   Arithmetic,
	"=":   Relational,
	"<>":  Relational,
	"!=":  Relational,
	"<":   Relational,
	">":   Relational,
	"<=":  Relational,
	">=":  Relational,
	"AND": Boolean,
	"OR":  Boolean,
}

func (k Kind) String() string {
	switch k {
	case Arithmetic:
		return "arithmetic"
	case Relational:
		return "relational"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// LookupOperator classifies an operator from its textual form. Keyword
// operators are matched case-insensitively.
func LookupOperator(symbol string) (Operator, bool) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	kind, ok := operators[sym]
	if !ok {
		return Operator{}, false
	}
	return Operator{Kind: kind, Symbol: sym}, true
}

// Apply combines left and right with op. It returns false when the operand
// types are not accepted by the operator. Invalid operands propagate an Invalid
// result so a single mistake is reported once.
func Apply(op Operator, left, right *Operand) (*Operand, bool) {
	if !left.Type.IsValid() || !right.Type.IsValid() {
		return NewInvalid(), true
	}

	switch op.Kind {
	case Arithmetic:
		return Math(op, left, right)
	case Relational:
		return Compare(op, left, right)
	case Boolean:
		return Logic(op, left, right)
	default:
		return nil, false
	}
}

// Math types integer arithmetic.
func Math(op Operator, left, right *Operand) (*Operand, bool) {
	if left.Type != types.Integer || right.Type != types.Integer {
		return nil, false
	}
	return binary(types.Integer, op, left, right), true
}

// Compare types comparisons. Integers support every relational operator,
// booleans only (in)equality.
func Compare(op Operator, left, right *Operand) (*Operand, bool) {
	if left.Type != right.Type {
		return nil, false
	}

	switch left.Type {
	case types.Integer:
		return binary(types.Boolean, op, left, right), true
	case types.Boolean:
		if op.Symbol == "=" || op.Symbol == "<>" || op.Symbol == "!=" {
			return binary(types.Boolean, op, left, right), true
		}
	}

	return nil, false
}

// Logic types boolean connectives.
func Logic(op Operator, left, right *Operand) (*Operand, bool) {
	if left.Type != types.Boolean || right.Type != types.Boolean {
		return nil, false
	}
	return binary(types.Boolean, op, left, right), true
}

func binary(typ *types.Type, op Operator, left, right *Operand) *Operand {
	return &Operand{Type: typ, Node: Binary{Op: op, Left: left, Right: right}}
}
