package session_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	"github.com/pseudomuto/sqlcheck/pkg/diag"
	. "github.com/pseudomuto/sqlcheck/pkg/session"
	"github.com/pseudomuto/sqlcheck/pkg/types"
	"github.com/stretchr/testify/require"
)

func newSession() *Session {
	return New(Options{Logger: slog.New(slog.DiscardHandler)})
}

func TestRun(t *testing.T) {
	s := newSession()
	require.NotEmpty(t, s.ID())

	err := s.Run(context.Background(), "schema.sql", strings.NewReader(`
		CREATE TABLE t (a integer, b boolean);
		SELECT a FROM t WHERE b;
		SELECT a FROM t WHERE a > 1;
		INSERT INTO t (a, b) VALUES (1, 0);
	`))
	require.NoError(t, err)
	require.False(t, s.HasErrors())

	require.Equal(t, 1, s.Catalog().Len())
	require.Len(t, s.Queries(), 2)
	require.NotNil(t, s.LastInsert())
	require.Equal(t, []string{"schema.sql"}, s.Sources())
}

func TestRunSharesCatalogAcrossSources(t *testing.T) {
	ctx := context.Background()
	s := newSession()

	require.NoError(t, s.Run(ctx, "schema.sql", strings.NewReader("CREATE TABLE t (a integer)")))
	require.NoError(t, s.Run(ctx, "query.sql", strings.NewReader("SELECT a FROM t WHERE a = 1")))
	require.False(t, s.HasErrors())
	require.Len(t, s.Queries(), 1)
}

func TestRunContinuesAfterLexerErrors(t *testing.T) {
	s := newSession()

	err := s.Run(context.Background(), "mixed.sql", strings.NewReader(
		"CREATE TABLE a (x integer);\nSELECT x FROM a WHERE x # 1;\nCREATE TABLE b (y integer);\nSELECT y FROM b;",
	))
	require.NoError(t, err)

	diags := s.Sink().Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, diag.KindSyntax, diags[0].Kind)
	require.Equal(t, 2, diags[0].Pos.Line)

	_, ok := s.Catalog().Table("b")
	require.True(t, ok)
	require.Len(t, s.Queries(), 1)
}

func TestRunWithPreloadedCatalog(t *testing.T) {
	tbl := catalog.NewTable("accounts")
	require.NoError(t, tbl.AddColumn(catalog.NewColumn("balance", types.Integer)))

	cat := catalog.New()
	cat.AddTable(tbl)

	s := New(Options{Catalog: cat, Logger: slog.New(slog.DiscardHandler)})
	require.NoError(t, s.Run(context.Background(), "q.sql", strings.NewReader("SELECT balance FROM accounts WHERE balance < 0")))
	require.False(t, s.HasErrors())
	require.Same(t, cat, s.Catalog())
}

func TestRunReadError(t *testing.T) {
	s := newSession()
	err := s.Run(context.Background(), "bad.sql", iotest.ErrReader(errors.New("boom")))
	require.ErrorContains(t, err, "failed to read bad.sql")
	require.Empty(t, s.Sources())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newSession()
	err := s.Run(ctx, "schema.sql", strings.NewReader("CREATE TABLE t (a integer)"))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, s.Catalog().Len())
}

func TestRunFile(t *testing.T) {
	s := newSession()
	require.NoError(t, s.RunFile(context.Background(), filepath.Join("testdata", "schema", "01_users.sql")))
	require.Equal(t, 1, s.Catalog().Len())

	err := s.RunFile(context.Background(), filepath.Join("testdata", "missing.sql"))
	require.ErrorContains(t, err, "failed to open file")
}

func TestRunDir(t *testing.T) {
	s := newSession()
	require.NoError(t, s.RunDir(context.Background(), filepath.Join("testdata", "schema")))
	require.False(t, s.HasErrors(), s.Report())

	require.Equal(t, []string{
		filepath.Join("testdata", "schema", "01_users.sql"),
		filepath.Join("testdata", "schema", "02_orders.sql"),
	}, s.Sources())

	require.Equal(t, 2, s.Catalog().Len())
	require.Len(t, s.Queries(), 1)
	require.Equal(t, "(((o.user_id = u.id) AND u.active) AND o.paid)", s.Queries()[0].Where().String())
}

func TestRunPath(t *testing.T) {
	ctx := context.Background()
	s := newSession()

	require.NoError(t, s.RunPath(ctx, filepath.Join("testdata", "schema")))
	require.NoError(t, s.RunPath(ctx, filepath.Join("testdata", "broken.sql")))

	require.True(t, s.HasErrors())

	diags := s.Sink().Diagnostics()
	require.Len(t, diags, 3)
	require.Equal(t, diag.KindSyntax, diags[0].Kind)
	require.Equal(t, 1, diags[0].Pos.Line)
	require.Equal(t, "line 2:15 Error: Cannot find table accounts", diags[1].String())
	require.Equal(t, "line 3:0 Error: Too few values in insert statement.", diags[2].String())

	require.ErrorContains(t, s.RunPath(ctx, "nope"), "failed to stat nope")
}

func TestFiles(t *testing.T) {
	files, err := Files("testdata")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join("testdata", "broken.sql"),
		filepath.Join("testdata", "schema", "01_users.sql"),
		filepath.Join("testdata", "schema", "02_orders.sql"),
	}, files)
}
