package query

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	"github.com/pseudomuto/sqlcheck/pkg/expr"
	"github.com/pseudomuto/sqlcheck/pkg/types"
)

var (
	// ErrUnknownQualifier is returned when a column's table qualifier is not bound in the query.
	ErrUnknownQualifier = errors.New("unknown table qualifier")

	// ErrUnknownColumn is returned when no bound table has the referenced column.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrAmbiguousColumn is returned when an unqualified column exists in more than one bound table.
	ErrAmbiguousColumn = errors.New("ambiguous column")

	// ErrUnresolvedTable is returned when a column may belong to a table that is
	// bound in the query but missing from the catalog.
	ErrUnresolvedTable = errors.New("unresolved table")

	// ErrNotBoolean is returned when a WHERE condition is not boolean-typed.
	ErrNotBoolean = errors.New("boolean expression expected")
)

type (
	// Projection is one selected output column, read straight from syntax.
	Projection struct {
		Table  *string
		Column string
		Alias  *string
	}

	// Binding is a table made available to the query's expressions. Table is nil
	// when the reference could not be resolved against the catalog; the binding
	// is kept so bindings stay aligned with the FROM clause.
	Binding struct {
		Name  string
		Table *catalog.Table
		Alias *string
	}

	// Select is a SELECT statement under construction.
	Select struct {
		types       *types.Registry
		projections []Projection
		bindings    []Binding
		where       *expr.Operand
		stack       expr.Stack
	}
)

// NewSelect creates an empty query bound to reg.
func NewSelect(reg *types.Registry) *Select {
	return &Select{types: reg}
}

// Types returns the registry the query was bound to.
func (s *Select) Types() *types.Registry {
	return s.types
}

// Stack returns the query's operand stack.
func (s *Select) Stack() *expr.Stack {
	return &s.stack
}

// AddProjection appends p to the projection list.
func (s *Select) AddProjection(p Projection) {
	s.projections = append(s.projections, p)
}

// Projections returns the projections in the order they were added.
func (s *Select) Projections() []Projection {
	out := make([]Projection, len(s.projections))
	copy(out, s.projections)
	return out
}

// Bind registers a table binding. tbl may be nil for an unresolved reference.
func (s *Select) Bind(name string, tbl *catalog.Table, alias *string) {
	s.bindings = append(s.bindings, Binding{Name: name, Table: tbl, Alias: alias})
}

// Bindings returns the table bindings in FROM clause order.
func (s *Select) Bindings() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// SetWhere attaches the WHERE condition. The operand must be boolean-typed.
func (s *Select) SetWhere(cond *expr.Operand) error {
	if cond.Type != types.Boolean {
		return errors.Wrapf(ErrNotBoolean, "got %s", cond.Type)
	}

	s.where = cond
	return nil
}

// Where returns the WHERE condition, or nil when the query has none.
func (s *Select) Where() *expr.Operand {
	return s.where
}

// ResolveColumn resolves an optionally qualified column against the query's
// bindings. A qualifier matches a binding's alias, or its table name when the
// binding has no alias. References that might point into an unresolved
// binding fail with ErrUnresolvedTable since the table itself was already
// reported missing.
func (s *Select) ResolveColumn(qualifier *string, column string) (*expr.Operand, error) {
	if qualifier != nil {
		b, ok := s.binding(*qualifier)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownQualifier, "%s", *qualifier)
		}

		if b.Table == nil {
			return nil, errors.Wrapf(ErrUnresolvedTable, "%s", *qualifier)
		}

		col, ok := b.Table.Column(column)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownColumn, "%s.%s", *qualifier, column)
		}

		return expr.NewColumnRef(b.ref(), col.Name, col.Type), nil
	}

	var (
		found      *expr.Operand
		unresolved bool
	)
	for _, b := range s.bindings {
		if b.Table == nil {
			unresolved = true
			continue
		}

		col, ok := b.Table.Column(column)
		if !ok {
			continue
		}

		if found != nil {
			return nil, errors.Wrapf(ErrAmbiguousColumn, "%s", column)
		}
		found = expr.NewColumnRef(b.ref(), col.Name, col.Type)
	}

	if found == nil {
		if unresolved {
			return nil, errors.Wrapf(ErrUnresolvedTable, "%s", column)
		}
		return nil, errors.Wrapf(ErrUnknownColumn, "%s", column)
	}

	return found, nil
}

func (s *Select) binding(qualifier string) (Binding, bool) {
	for _, b := range s.bindings {
		if strings.EqualFold(b.ref(), qualifier) {
			return b, true
		}
	}
	return Binding{}, false
}

// ref is the name expressions use to refer to the binding.
func (b Binding) ref() string {
	if b.Alias != nil {
		return *b.Alias
	}
	return b.Name
}
