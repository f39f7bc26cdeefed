package analyzer

import (
	"log/slog"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	"github.com/pseudomuto/sqlcheck/pkg/diag"
	"github.com/pseudomuto/sqlcheck/pkg/expr"
	"github.com/pseudomuto/sqlcheck/pkg/parser"
	"github.com/pseudomuto/sqlcheck/pkg/query"
	"github.com/pseudomuto/sqlcheck/pkg/types"
	"github.com/pseudomuto/sqlcheck/pkg/walk"
)

type (
	// Processor receives every finished SELECT query.
	Processor interface {
		Process(*query.Select)
	}

	// ProcessorFunc adapts a function to the Processor interface.
	ProcessorFunc func(*query.Select)

	// Params are the analyzer's dependencies. Nil fields get fresh defaults.
	Params struct {
		Catalog   *catalog.Catalog
		Types     *types.Registry
		Sink      *diag.Sink
		Processor Processor
		Logger    *slog.Logger
	}

	// Analyzer is the semantic analysis listener. It is not safe for concurrent use.
	Analyzer struct {
		catalog   *catalog.Catalog
		types     *types.Registry
		sink      *diag.Sink
		processor Processor
		logger    *slog.Logger

		// in-progress statements, innermost last
		tables  []*catalog.Table
		selects []*query.Select

		lastSelect *query.Select
		lastInsert *query.Insert
	}
)

var _ walk.Listener = (*Analyzer)(nil)

// Process calls f(q).
func (f ProcessorFunc) Process(q *query.Select) {
	f(q)
}

// New creates an analyzer.
func New(p Params) *Analyzer {
	a := &Analyzer{
		catalog:   p.Catalog,
		types:     p.Types,
		sink:      p.Sink,
		processor: p.Processor,
		logger:    p.Logger,
	}

	if a.catalog == nil {
		a.catalog = catalog.New()
	}
	if a.types == nil {
		a.types = types.Prelude()
	}
	if a.sink == nil {
		a.sink = diag.NewSink()
	}
	if a.processor == nil {
		a.processor = ProcessorFunc(func(*query.Select) {})
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Catalog returns the catalog tables are committed to.
func (a *Analyzer) Catalog() *catalog.Catalog { return a.catalog }

// Types returns the type registry column types are resolved against.
func (a *Analyzer) Types() *types.Registry { return a.types }

// Sink returns the diagnostic sink.
func (a *Analyzer) Sink() *diag.Sink { return a.sink }

// HasErrors reports whether analysis produced any error.
func (a *Analyzer) HasErrors() bool { return a.sink.HasErrors() }

// Diagnostics returns the diagnostics recorded so far, in order.
func (a *Analyzer) Diagnostics() []diag.Diagnostic { return a.sink.Diagnostics() }

// Report renders the diagnostic report.
func (a *Analyzer) Report() string { return a.sink.Report() }

// LastSelect returns the most recently finished SELECT query, if any.
func (a *Analyzer) LastSelect() *query.Select { return a.lastSelect }

// LastInsert returns the most recently built INSERT statement. It is nil when
// the last INSERT failed to check out.
func (a *Analyzer) LastInsert() *query.Insert { return a.lastInsert }

// SyntaxError records a parser error as a syntax diagnostic.
func (a *Analyzer) SyntaxError(e parser.SyntaxError) {
	a.sink.Errorf(diag.KindSyntax, diag.Pos{Line: e.Line, Column: e.Column}, "%s", e.Message)
}

// EnterCreateTable starts building a table.
func (a *Analyzer) EnterCreateTable(stmt *parser.CreateTableStmt) {
	a.tables = append(a.tables, catalog.NewTable(stmt.Name))
}

// ExitColumnDef adds a column to the table being built. Columns with an
// unknown type or a name already in use are reported and left out.
func (a *Analyzer) ExitColumnDef(col *parser.ColumnDef) {
	tbl := a.currentTable()
	if tbl == nil {
		a.sink.Errorf(diag.KindInternal, at(col.Pos), "Column %s declared outside of a table", col.Name)
		return
	}

	typ, ok := a.types.Lookup(col.Type)
	if !ok {
		a.sink.Errorf(diag.KindType, at(col.Pos), "Type expected")
		return
	}

	if err := tbl.AddColumn(catalog.NewColumn(col.Name, typ)); err != nil {
		a.sink.Errorf(diag.KindReference, at(col.Pos), "Duplicate column name %s in table %s", col.Name, tbl.Name)
	}
}

// ExitCreateTable commits the table to the catalog, replacing any table of
// the same name.
func (a *Analyzer) ExitCreateTable(stmt *parser.CreateTableStmt) {
	tbl := a.currentTable()
	if tbl == nil {
		return
	}

	a.tables = a.tables[:len(a.tables)-1]
	a.catalog.AddTable(tbl)
	a.logger.Debug("Committed table", "table", tbl.Name, "columns", tbl.Len())
}

// EnterSelect starts building a query.
func (a *Analyzer) EnterSelect(*parser.SelectStmt) {
	a.selects = append(a.selects, query.NewSelect(a.types))
}

// ExitProjection records a selected column.
func (a *Analyzer) ExitProjection(p *parser.Projection) {
	q := a.currentSelect()
	if q == nil {
		return
	}

	column := p.Column
	if p.Star {
		column = "*"
	}

	q.AddProjection(query.Projection{Table: p.Table, Column: column, Alias: p.Alias})
}

// ExitTableClause binds the FROM tables. Missing tables are reported and
// bound unresolved.
func (a *Analyzer) ExitTableClause(clause *parser.TableClause) {
	q := a.currentSelect()
	if q == nil {
		return
	}

	for _, ref := range clause.Tables {
		tbl, ok := a.catalog.Table(ref.Name)
		if !ok {
			a.sink.Errorf(diag.KindReference, at(ref.Pos), "Cannot find table %s", ref.Name)
		}

		// Unresolved tables are bound too, keeping bindings aligned with the clause.
		q.Bind(ref.Name, tbl, ref.Alias)
	}

	if n := q.Stack().Drain(); n > 0 {
		a.logger.Debug("Discarded stale operands", "count", n)
	}
}

// ExitWhereClause pops the typed condition and attaches it when it is boolean.
func (a *Analyzer) ExitWhereClause(where *parser.WhereClause) {
	q := a.currentSelect()
	if q == nil {
		return
	}

	cond, ok := q.Stack().Pop()
	if !ok {
		a.sink.Errorf(diag.KindInternal, at(where.Pos), "Missing operand for WHERE clause")
		return
	}

	if !cond.Type.IsValid() {
		return
	}

	if err := q.SetWhere(cond); err != nil {
		a.sink.Errorf(diag.KindType, at(where.Condition.Pos), "Boolean expression expected")
	}
}

// ExitSelect finishes the query and hands it to the Processor, errors or not.
func (a *Analyzer) ExitSelect(stmt *parser.SelectStmt) {
	q := a.currentSelect()
	if q == nil {
		return
	}
	a.selects = a.selects[:len(a.selects)-1]

	if n := q.Stack().Drain(); n > 0 {
		a.sink.Errorf(diag.KindInternal, at(stmt.Pos), "%d operands left on the stack at the end of the statement", n)
	}

	a.lastSelect = q
	a.processor.Process(q)
}

// ExitInsert checks an INSERT against the catalog.
func (a *Analyzer) ExitInsert(stmt *parser.InsertStmt) {
	a.lastInsert = nil

	tbl, ok := a.catalog.Table(stmt.Table)
	if !ok {
		a.sink.Errorf(diag.KindReference, at(stmt.Pos), "Undefined table name %s", stmt.Table)
		return
	}

	values := make([]int64, 0, len(stmt.Values))
	for _, v := range stmt.Values {
		lit, err := expr.Int(v.Text())
		if err != nil {
			a.sink.Errorf(diag.KindType, at(v.Pos), "Integer literal %s out of range", v.Text())
			return
		}
		values = append(values, lit.Node.(expr.Literal).Value.(int64))
	}

	ins, err := query.NewInsert(tbl, stmt.ColumnNames(), values)
	if err != nil {
		var undefined *query.UndefinedColumnError
		switch {
		case errors.Is(err, query.ErrTooFewValues):
			a.sink.Errorf(diag.KindCardinality, at(stmt.Pos), "Too few values in insert statement.")
		case errors.Is(err, query.ErrTooManyValues):
			a.sink.Errorf(diag.KindCardinality, at(stmt.Pos), "Too many values in insert statement.")
		case errors.As(err, &undefined):
			a.sink.Errorf(diag.KindReference, at(stmt.Columns[undefined.Index].Pos),
				"Undefined column name %s in table %s", undefined.Column, undefined.Table)
		default:
			a.sink.Errorf(diag.KindInternal, at(stmt.Pos), "%s", err)
		}
		return
	}

	a.lastInsert = ins
	a.logger.Debug("Checked insert", "table", tbl.Name, "values", len(ins.Values))
}

func (a *Analyzer) currentTable() *catalog.Table {
	if len(a.tables) == 0 {
		return nil
	}
	return a.tables[len(a.tables)-1]
}

func (a *Analyzer) currentSelect() *query.Select {
	if len(a.selects) == 0 {
		return nil
	}
	return a.selects[len(a.selects)-1]
}

// at converts a parser position to a diagnostic position with a 0-based column.
func at(pos lexer.Position) diag.Pos {
	return diag.Pos{Line: pos.Line, Column: max(pos.Column-1, 0)}
}

func qualified(table *string, column string) string {
	if table == nil {
		return column
	}
	return *table + "." + column
}

func isTrue(token string) bool {
	return strings.EqualFold(token, "TRUE")
}
