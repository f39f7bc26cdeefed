package format

import (
	"strconv"
	"strings"

	"github.com/pseudomuto/sqlcheck/pkg/query"
)

// Select renders q. Projections and tables are written as they were bound;
// the WHERE clause is omitted when the query has no valid condition.
func (f *Formatter) Select(q *query.Select) string {
	projections := make([]string, 0, len(q.Projections()))
	for _, p := range q.Projections() {
		s := p.Column
		if p.Table != nil {
			s = *p.Table + "." + s
		}
		if p.Alias != nil {
			s += " " + f.keyword("AS") + " " + *p.Alias
		}
		projections = append(projections, s)
	}

	tables := make([]string, 0, len(q.Bindings()))
	for _, b := range q.Bindings() {
		s := b.Name
		if b.Alias != nil {
			s += " " + *b.Alias
		}
		tables = append(tables, s)
	}

	var sb strings.Builder
	sb.WriteString(f.keyword("SELECT") + " " + strings.Join(projections, ", "))
	sb.WriteString("\n" + f.keyword("FROM") + " " + strings.Join(tables, ", "))
	if where := q.Where(); where != nil {
		sb.WriteString("\n" + f.keyword("WHERE") + " " + where.String())
	}
	sb.WriteString(";")

	return sb.String()
}

// Insert renders ins with its resolved column types as a trailing comment.
func (f *Formatter) Insert(ins *query.Insert) string {
	columns := make([]string, 0, len(ins.Values))
	values := make([]string, 0, len(ins.Values))
	typeNames := make([]string, 0, len(ins.Values))
	for _, v := range ins.Values {
		columns = append(columns, v.Column)
		values = append(values, strconv.FormatInt(v.Value, 10))
		typeNames = append(typeNames, v.Type.String())
	}

	return f.keyword("INSERT INTO") + " " + ins.Table.Name +
		" (" + strings.Join(columns, ", ") + ") " +
		f.keyword("VALUES") + " (" + strings.Join(values, ", ") + ");" +
		" -- " + strings.Join(typeNames, ", ")
}
