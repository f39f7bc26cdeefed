package query

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	"github.com/pseudomuto/sqlcheck/pkg/types"
)

var (
	// ErrTooFewValues is returned when an insert lists fewer values than columns.
	ErrTooFewValues = errors.New("too few values in insert statement")

	// ErrTooManyValues is returned when an insert lists more values than columns.
	ErrTooManyValues = errors.New("too many values in insert statement")

	// ErrUndefinedColumn is returned when an insert names a column the table lacks.
	ErrUndefinedColumn = errors.New("undefined column")
)

type (
	// Value is one column assignment of an insert.
	Value struct {
		Column string
		Type   *types.Type
		Value  int64
	}

	// Insert is a checked INSERT statement.
	Insert struct {
		Table  *catalog.Table
		Values []Value
	}
)

// NewInsert pairs columns with values positionally. The column and value lists
// must be the same length and every column must exist in tbl.
func NewInsert(tbl *catalog.Table, columns []string, values []int64) (*Insert, error) {
	switch {
	case len(values) < len(columns):
		return nil, ErrTooFewValues
	case len(values) > len(columns):
		return nil, ErrTooManyValues
	}

	ins := &Insert{Table: tbl, Values: make([]Value, 0, len(columns))}
	for i, name := range columns {
		col, ok := tbl.Column(name)
		if !ok {
			return nil, &UndefinedColumnError{Table: tbl.Name, Column: name, Index: i}
		}

		ins.Values = append(ins.Values, Value{Column: col.Name, Type: col.Type, Value: values[i]})
	}

	return ins, nil
}

// UndefinedColumnError identifies the first column of an insert missing from its table.
type UndefinedColumnError struct {
	Table  string
	Column string
	Index  int
}

func (e *UndefinedColumnError) Error() string {
	return "undefined column " + e.Column + " in table " + e.Table + " (position " + strconv.Itoa(e.Index) + ")"
}

// Cause makes errors.Cause report ErrUndefinedColumn.
func (e *UndefinedColumnError) Cause() error {
	return ErrUndefinedColumn
}
