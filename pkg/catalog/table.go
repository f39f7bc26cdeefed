package catalog

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/types"
)

// ErrDuplicateColumn is returned when a table already has a column with the same name.
var ErrDuplicateColumn = errors.New("duplicate column")

type (
	// Column is an immutable (name, type) pair.
	Column struct {
		Name string
		Type *types.Type
	}

	// Table is a named, ordered set of uniquely named columns.
	Table struct {
		Name    string
		columns []*Column
		index   map[string]int
	}
)

// NewColumn creates a column.
func NewColumn(name string, typ *types.Type) *Column {
	return &Column{Name: name, Type: typ}
}

// String renders the column as "name type".
func (c *Column) String() string {
	return c.Name + " " + c.Type.String()
}

// NewTable creates a table with no columns.
func NewTable(name string) *Table {
	return &Table{Name: name, index: make(map[string]int)}
}

// AddColumn appends col, keeping declaration order. Column names are compared
// case-insensitively.
func (t *Table) AddColumn(col *Column) error {
	key := strings.ToLower(col.Name)
	if _, ok := t.index[key]; ok {
		return errors.Wrapf(ErrDuplicateColumn, "column %s in table %s", col.Name, t.Name)
	}

	t.index[key] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Columns returns the columns in declaration order.
func (t *Table) Columns() []*Column {
	cols := make([]*Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Len returns the number of columns.
func (t *Table) Len() int {
	return len(t.columns)
}
