package clickhouse

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	"github.com/pseudomuto/sqlcheck/pkg/types"
)

var (
	wrapperPattern = regexp.MustCompile(`^(?:Nullable|LowCardinality)\((.*)\)$`)
	integerPattern = regexp.MustCompile(`^U?Int(?:8|16|32|64|128|256)$`)
)

// Column is a row of system.columns.
type Column struct {
	Database string
	Table    string
	Name     string
	Type     string
}

// String returns the column as database.table.column.
func (c Column) String() string {
	return c.Database + "." + c.Table + "." + c.Name
}

// Columns returns the columns of every table in databases, ordered by
// database, table and column position.
func (c *Client) Columns(ctx context.Context, databases ...string) ([]Column, error) {
	query := `
		SELECT database, table, name, type
		FROM system.columns
		WHERE has(?, database)
		ORDER BY database, table, position
	`

	rows, err := c.conn.Query(ctx, query, databases)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query columns")
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Database, &col.Table, &col.Name, &col.Type); err != nil {
			return nil, errors.Wrap(err, "failed to scan column row")
		}
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read columns")
	}

	return columns, nil
}

// LoadCatalog adds the tables of databases to cat as AddTables does.
func (c *Client) LoadCatalog(ctx context.Context, cat *catalog.Catalog, reg *types.Registry, databases ...string) ([]string, error) {
	columns, err := c.Columns(ctx, databases...)
	if err != nil {
		return nil, err
	}

	return AddTables(cat, columns, reg), nil
}

// AddTables builds tables from columns and adds them to cat. Tables are named
// without their database; a table cat already holds is kept, and when two
// databases hold a table with the same name the first one wins. The returned
// slice lists the columns that were left out, either because their table was
// shadowed or because their type has no registry equivalent.
func AddTables(cat *catalog.Catalog, columns []Column, reg *types.Registry) []string {
	var (
		skipped []string
		fresh   = make([]Column, 0, len(columns))
	)

	for _, col := range columns {
		if _, exists := cat.Table(col.Table); exists {
			skipped = append(skipped, col.String())
			continue
		}
		fresh = append(fresh, col)
	}

	unmapped, tables := BuildTables(fresh, reg)
	for _, tbl := range tables {
		cat.AddTable(tbl)
	}

	return append(skipped, unmapped...)
}

// BuildTables groups columns into catalog tables. Columns must be ordered by
// database and table, as Columns returns them.
func BuildTables(columns []Column, reg *types.Registry) ([]string, []*catalog.Table) {
	var (
		skipped []string
		tables  []*catalog.Table
		current *catalog.Table
		seen    = make(map[string]bool)
		source  string
	)

	for _, col := range columns {
		key := col.Database + "." + col.Table
		if current == nil || key != source {
			source = key
			current = nil

			name := strings.ToLower(col.Table)
			if !seen[name] {
				seen[name] = true
				current = catalog.NewTable(col.Table)
				tables = append(tables, current)
			}
		}

		if current == nil {
			skipped = append(skipped, col.String())
			continue
		}

		typ, ok := MapType(col.Type, reg)
		if !ok {
			skipped = append(skipped, col.String())
			continue
		}

		if err := current.AddColumn(catalog.NewColumn(col.Name, typ)); err != nil {
			skipped = append(skipped, col.String())
		}
	}

	return skipped, tables
}

// MapType resolves a ClickHouse type name. Names the registry knows (built-in
// or configured aliases) win over the built-in mapping.
func MapType(name string, reg *types.Registry) (*types.Type, bool) {
	name = strings.TrimSpace(name)
	for {
		m := wrapperPattern.FindStringSubmatch(name)
		if m == nil {
			break
		}
		name = strings.TrimSpace(m[1])
	}

	if typ, ok := reg.Lookup(name); ok {
		return typ, true
	}

	switch {
	case integerPattern.MatchString(name):
		return reg.Lookup(types.Integer.Name)
	case name == "Bool":
		return reg.Lookup(types.Boolean.Name)
	default:
		return nil, false
	}
}
