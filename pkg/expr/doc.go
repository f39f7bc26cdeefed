// Package expr implements typed operands and the operand stack used to build
// expressions bottom-up while a statement is walked.
//
// An Operand pairs a type with the expression node that produced it. Leaves
// are literals and column references; interior nodes are binary operator
// applications built by Apply, which enforces the operator's typing rules.
//
// Example usage:
//
//	var st expr.Stack
//	st.Push(expr.NewColumnRef("u", "age", types.Integer))
//	lit, _ := expr.Int("18")
//	st.Push(lit)
//
//	right, _ := st.Pop()
//	left, _ := st.Pop()
//	op, _ := expr.LookupOperator(">")
//	if res, ok := expr.Apply(op, left, right); ok {
//		st.Push(res) // boolean: u.age > 18
//	}
package expr
