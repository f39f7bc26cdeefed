// Package format renders catalogs and analyzed queries as SQL.
//
// The output is normalized: keywords use a single casing, table columns are
// aligned and expressions are fully parenthesized, so the rendering of an
// analyzed query shows exactly how its WHERE clause was grouped.
//
// Example usage:
//
//	f := format.NewDefault()
//	if err := f.Catalog(os.Stdout, cat); err != nil {
//		return err
//	}
//
// Output:
//
//	CREATE TABLE users (
//	    id     integer,
//	    active boolean
//	);
package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	"github.com/pseudomuto/sqlcheck/pkg/query"
)

// FormatterOptions controls formatting behavior
type FormatterOptions struct {
	// IndentSize specifies the number of spaces for each indent level
	IndentSize int
	// UppercaseKeywords whether to uppercase SQL keywords
	UppercaseKeywords bool
	// AlignColumns whether to align column definitions in tables
	AlignColumns bool
}

// DefaultOptions returns standard formatting options
func DefaultOptions() *FormatterOptions {
	return &FormatterOptions{
		IndentSize:        4,
		UppercaseKeywords: true,
		AlignColumns:      true,
	}
}

// Formatter renders catalog objects and queries with configurable options
type Formatter struct {
	options *FormatterOptions
}

// New creates a new Formatter with the specified options
func New(options *FormatterOptions) *Formatter {
	if options == nil {
		options = DefaultOptions()
	}
	return &Formatter{options: options}
}

// NewDefault creates a new Formatter with default options
func NewDefault() *Formatter {
	return New(DefaultOptions())
}

// Catalog writes a CREATE TABLE statement for every table in cat, separated
// by blank lines.
func (f *Formatter) Catalog(w io.Writer, cat *catalog.Catalog) error {
	tables := cat.Tables()
	parts := make([]string, 0, len(tables))
	for _, tbl := range tables {
		parts = append(parts, f.Table(tbl))
	}

	return write(w, parts)
}

// Queries writes every query, one statement per paragraph.
func (f *Formatter) Queries(w io.Writer, queries []*query.Select) error {
	parts := make([]string, 0, len(queries))
	for _, q := range queries {
		parts = append(parts, f.Select(q))
	}

	return write(w, parts)
}

// keyword formats a keyword according to the formatter options
func (f *Formatter) keyword(kw string) string {
	if f.options.UppercaseKeywords {
		return strings.ToUpper(kw)
	}
	return strings.ToLower(kw)
}

// indent returns the specified number of indent levels as spaces
func (f *Formatter) indent(level int) string {
	return strings.Repeat(" ", level*f.options.IndentSize)
}

func write(w io.Writer, parts []string) error {
	if len(parts) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, strings.Join(parts, "\n\n")+"\n"); err != nil {
		return errors.Wrap(err, "failed to write formatted SQL")
	}

	return nil
}
