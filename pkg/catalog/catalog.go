package catalog

import "strings"

// Catalog maps table names to tables, preserving the order tables were added.
type Catalog struct {
	tables []*Table
	index  map[string]int
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// AddTable stores t. A table with the same (case-insensitive) name is replaced
// in place so Tables keeps its original position.
func (c *Catalog) AddTable(t *Table) {
	key := strings.ToLower(t.Name)
	if i, ok := c.index[key]; ok {
		c.tables[i] = t
		return
	}

	c.index[key] = len(c.tables)
	c.tables = append(c.tables, t)
}

// Table looks up a table by name.
func (c *Catalog) Table(name string) (*Table, bool) {
	i, ok := c.index[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return c.tables[i], true
}

// Tables returns every table in the order it was first added.
func (c *Catalog) Tables() []*Table {
	tables := make([]*Table, len(c.tables))
	copy(tables, c.tables)
	return tables
}

// Len returns the number of tables.
func (c *Catalog) Len() int {
	return len(c.tables)
}
