package analyzer

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/diag"
	"github.com/pseudomuto/sqlcheck/pkg/expr"
	"github.com/pseudomuto/sqlcheck/pkg/parser"
	"github.com/pseudomuto/sqlcheck/pkg/query"
	"github.com/pseudomuto/sqlcheck/pkg/walk"
)

// An expression that fails to type is replaced by an Invalid operand rather
// than dropped, so the stack keeps exactly one operand per sub-expression and
// enclosing operators don't report the same mistake again.

// ExitBinary pops both operands and pushes the typed result of the operator.
func (a *Analyzer) ExitBinary(b *walk.Binary) {
	q := a.currentSelect()
	if q == nil {
		return
	}
	st := q.Stack()

	op, known := expr.LookupOperator(b.Symbol)

	right, okRight := st.Pop()
	left, okLeft := st.Pop()
	if !okRight || !okLeft {
		a.sink.Errorf(diag.KindInternal, at(b.Pos), "Missing operand for operator %s", b.Symbol)
		st.Push(expr.NewInvalid())
		return
	}

	if !known {
		a.sink.Errorf(diag.KindInternal, at(b.Pos), "Unknown operator %s", b.Symbol)
		st.Push(expr.NewInvalid())
		return
	}

	res, ok := expr.Apply(op, left, right)
	if !ok {
		a.sink.Errorf(diag.KindType, at(b.Pos), "Incompatible types %s and %s for operator %s",
			left.Type, right.Type, op.Symbol)
		st.Push(expr.NewInvalid())
		return
	}

	st.Push(res)
}

// ExitParen needs no work: the inner expression's operand is already on the stack.
func (a *Analyzer) ExitParen(*parser.Factor) {}

// ExitLeaf pushes the operand for a literal or column reference.
func (a *Analyzer) ExitLeaf(f *parser.Factor) {
	q := a.currentSelect()
	if q == nil {
		return
	}

	q.Stack().Push(a.leaf(q, f))
}

func (a *Analyzer) leaf(q *query.Select, f *parser.Factor) *expr.Operand {
	switch {
	case f.Column != nil:
		return a.columnRef(q, f.Column)
	case f.Boolean != nil:
		return expr.Bool(isTrue(*f.Boolean))
	case f.Number != nil:
		lit, err := expr.Int(*f.Number)
		if err != nil {
			a.sink.Errorf(diag.KindType, at(f.Pos), "Integer literal %s out of range", *f.Number)
			return expr.NewInvalid()
		}
		return lit
	default:
		a.sink.Errorf(diag.KindInternal, at(f.Pos), "Empty expression")
		return expr.NewInvalid()
	}
}

func (a *Analyzer) columnRef(q *query.Select, ref *parser.ColumnRef) *expr.Operand {
	op, err := q.ResolveColumn(ref.Table, ref.Name)
	if err == nil {
		return op
	}

	switch errors.Cause(err) {
	case query.ErrUnknownQualifier:
		a.sink.Errorf(diag.KindReference, at(ref.Pos), "Cannot find table %s", *ref.Table)
	case query.ErrUnknownColumn:
		a.sink.Errorf(diag.KindReference, at(ref.Pos), "Cannot find column %s", qualified(ref.Table, ref.Name))
	case query.ErrAmbiguousColumn:
		a.sink.Errorf(diag.KindReference, at(ref.Pos), "Ambiguous column name %s", ref.Name)
	case query.ErrUnresolvedTable:
		// the missing table was reported by the FROM clause
	default:
		a.sink.Errorf(diag.KindInternal, at(ref.Pos), "%s", err)
	}

	return expr.NewInvalid()
}
