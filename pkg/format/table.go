package format

import (
	"strings"

	"github.com/pseudomuto/sqlcheck/pkg/catalog"
)

// Table renders tbl as a CREATE TABLE statement.
func (f *Formatter) Table(tbl *catalog.Table) string {
	var sb strings.Builder
	sb.WriteString(f.keyword("CREATE TABLE") + " " + tbl.Name + " (")

	columns := tbl.Columns()
	if len(columns) == 0 {
		sb.WriteString(");")
		return sb.String()
	}

	width := 0
	if f.options.AlignColumns {
		for _, col := range columns {
			width = max(width, len(col.Name))
		}
	}

	sb.WriteString("\n")
	for i, col := range columns {
		sb.WriteString(f.indent(1))
		sb.WriteString(col.Name)
		sb.WriteString(strings.Repeat(" ", max(width-len(col.Name), 0)+1))
		sb.WriteString(col.Type.String())
		if i < len(columns)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(");")

	return sb.String()
}
