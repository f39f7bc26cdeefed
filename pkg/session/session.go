// Package session runs the semantic analyzer over SQL sources that share a
// single catalog.
//
// A Session owns its catalog, type registry and diagnostic sink. Every source
// it runs sees the tables declared by the sources run before it, which makes
// it possible to analyze a schema file followed by the queries written
// against it:
//
//	s := session.New(session.Options{})
//	if err := s.RunFile(ctx, "db/schema.sql"); err != nil {
//		return err
//	}
//	if err := s.RunDir(ctx, "db/queries"); err != nil {
//		return err
//	}
//
//	if s.HasErrors() {
//		fmt.Print(s.Report())
//	}
package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/analyzer"
	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	"github.com/pseudomuto/sqlcheck/pkg/diag"
	"github.com/pseudomuto/sqlcheck/pkg/parser"
	"github.com/pseudomuto/sqlcheck/pkg/query"
	"github.com/pseudomuto/sqlcheck/pkg/types"
	"github.com/pseudomuto/sqlcheck/pkg/walk"
)

type (
	// Options configure a Session. Zero values get defaults: an empty catalog,
	// the standard prelude and slog.Default().
	Options struct {
		Catalog *catalog.Catalog
		Types   *types.Registry
		Logger  *slog.Logger
	}

	// Session is a single analysis run. It is not safe for concurrent use.
	Session struct {
		id       string
		logger   *slog.Logger
		sink     *diag.Sink
		analyzer *analyzer.Analyzer
		queries  []*query.Select
		sources  []string
	}
)

// New creates a session.
func New(opts Options) *Session {
	s := &Session{
		id:     uuid.NewString(),
		logger: opts.Logger,
		sink:   diag.NewSink(),
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("session", s.id)

	s.analyzer = analyzer.New(analyzer.Params{
		Catalog:   opts.Catalog,
		Types:     opts.Types,
		Sink:      s.sink,
		Processor: analyzer.ProcessorFunc(s.process),
		Logger:    s.logger,
	})

	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Catalog returns the session's catalog.
func (s *Session) Catalog() *catalog.Catalog { return s.analyzer.Catalog() }

// Types returns the session's type registry.
func (s *Session) Types() *types.Registry { return s.analyzer.Types() }

// Sink returns the session's diagnostic sink.
func (s *Session) Sink() *diag.Sink { return s.sink }

// HasErrors reports whether any source produced an error.
func (s *Session) HasErrors() bool { return s.sink.HasErrors() }

// Report renders the diagnostics of every source run so far.
func (s *Session) Report() string { return s.sink.Report() }

// Queries returns every SELECT query analyzed so far, in order.
func (s *Session) Queries() []*query.Select {
	out := make([]*query.Select, len(s.queries))
	copy(out, s.queries)
	return out
}

// LastInsert returns the most recently checked INSERT statement, if any.
func (s *Session) LastInsert() *query.Insert { return s.analyzer.LastInsert() }

// Sources returns the names of the sources run so far.
func (s *Session) Sources() []string {
	out := make([]string, len(s.sources))
	copy(out, s.sources)
	return out
}

// Run analyzes the SQL read from r. Problems in the SQL are recorded as
// diagnostics; the returned error is only set when r cannot be read or ctx is
// done before every statement was analyzed.
func (s *Session) Run(ctx context.Context, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "analysis of %s cancelled", name)
	}

	sql, errs, err := parser.Parse(name, r)
	if err != nil {
		return err
	}

	s.sources = append(s.sources, name)
	before := s.sink.Len()

	walk.Errors(errs, s.analyzer)
	for i, stmt := range sql.Statements {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "analysis of %s cancelled after %d statements", name, i)
		}

		s.logger.Debug("Analyzing statement", "source", name, "line", stmt.Pos.Line, "statement", stmt.String())
		walk.Statement(stmt, s.analyzer)
	}

	s.logger.Info("Analyzed source",
		"source", name,
		"statements", len(sql.Statements),
		"syntax_errors", len(errs),
		"diagnostics", s.sink.Len()-before,
	)

	return nil
}

// RunFile analyzes the file at path.
func (s *Session) RunFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return s.Run(ctx, path, f)
}

// RunDir analyzes every .sql file below dir in lexical path order.
func (s *Session) RunDir(ctx context.Context, dir string) error {
	files, err := Files(dir)
	if err != nil {
		return err
	}

	for _, path := range files {
		if err := s.RunFile(ctx, path); err != nil {
			return err
		}
	}

	return nil
}

// RunPath analyzes path with RunDir when it is a directory and RunFile otherwise.
func (s *Session) RunPath(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}

	if info.IsDir() {
		return s.RunDir(ctx, path)
	}

	return s.RunFile(ctx, path)
}

// Files lists the .sql files below dir, sorted.
func Files(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list SQL files in %s", dir)
	}

	sort.Strings(files)
	return files, nil
}

func (s *Session) process(q *query.Select) {
	s.queries = append(s.queries, q)
}
