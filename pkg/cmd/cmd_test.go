package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/clickhouse"
	"github.com/pseudomuto/sqlcheck/pkg/config"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func projectConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfigFile(filepath.Join("testdata", "project", "sqlcheck.yaml"))
	require.NoError(t, err)

	for i, path := range cfg.Catalog {
		cfg.Catalog[i] = filepath.Join("testdata", "project", path)
	}
	return cfg
}

func run(t *testing.T, command *cli.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := &cli.Command{
		Name:      "test",
		Flags:     command.Flags,
		Action:    command.Action,
		Writer:    &stdout,
		ErrWriter: &stderr,
	}

	err := app.Run(context.Background(), append([]string{"test"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestCheckCommand(t *testing.T) {
	out, _, err := run(t, check(projectConfig(t)), filepath.Join("testdata", "project", "db", "queries"))
	require.NoError(t, err)
	require.Equal(t, "3 files checked, 2 tables, 2 queries, no problems found\n", out)
}

func TestCheckCommandWithoutConfig(t *testing.T) {
	out, _, err := run(t, check(nil), filepath.Join("testdata", "project", "db", "schema.sql"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrAnalysisFailed))
	require.Contains(t, out, "line 1:20 Error: Type expected")
}

func TestCheckCommandReportsProblems(t *testing.T) {
	out, _, err := run(t, check(projectConfig(t)), filepath.Join("testdata", "broken.sql"))
	require.ErrorIs(t, err, ErrAnalysisFailed)
	require.ErrorContains(t, err, "2 problems found")
	require.Equal(t, "2 errors seem to have occurred:\n"+
		"line 1:27 Error: Boolean expression expected\n"+
		"line 2:15 Error: Cannot find table accounts\n", out)
}

func TestCheckCommandRequiresPath(t *testing.T) {
	_, _, err := run(t, check(nil))
	require.ErrorContains(t, err, "at least one path argument is required")
}

func TestCheckCommandMissingPath(t *testing.T) {
	_, _, err := run(t, check(nil), "does-not-exist")
	require.ErrorContains(t, err, "failed to stat does-not-exist")
}

func TestCheckCommandInvalidTypeAlias(t *testing.T) {
	cfg := &config.Config{Types: map[string]string{"money": "decimal"}}
	_, _, err := run(t, check(cfg), filepath.Join("testdata", "broken.sql"))
	require.ErrorContains(t, err, "invalid type alias money")
}

func TestCatalogCommand(t *testing.T) {
	out, stderr, err := run(t, catalogCmd(projectConfig(t)), filepath.Join("testdata", "project", "db", "queries"))
	require.NoError(t, err)
	require.Empty(t, stderr)
	require.Equal(t, `CREATE TABLE users (
    id     integer,
    active boolean,
    age    integer
);

CREATE TABLE orders (
    id      integer,
    user_id integer,
    total   integer
);

SELECT id, age
FROM users
WHERE (users.active AND (users.age >= 18));

SELECT o.id, u.id AS uid
FROM orders o, users u
WHERE (o.user_id = u.id);
`, out)
}

func TestCatalogCommandOptions(t *testing.T) {
	out, _, err := run(t, catalogCmd(projectConfig(t)), "--lowercase", "--tables-only", filepath.Join("testdata", "project", "db", "queries"))
	require.NoError(t, err)
	require.Contains(t, out, "create table users (")
	require.NotContains(t, out, "select")
}

func TestCatalogCommandReportsProblems(t *testing.T) {
	out, stderr, err := run(t, catalogCmd(projectConfig(t)), filepath.Join("testdata", "broken.sql"))
	require.ErrorIs(t, err, ErrAnalysisFailed)
	require.Contains(t, out, "CREATE TABLE orders (")
	require.Contains(t, out, "FROM accounts;")
	require.Contains(t, stderr, "Cannot find table accounts")
}

func TestLoadConfigFlag(t *testing.T) {
	var loaded *config.Config
	app := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var err error
			loaded, err = loadConfig(cmd, nil)
			return err
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"test"}))
	require.Nil(t, loaded)

	path := filepath.Join("testdata", "project", "sqlcheck.yaml")
	require.NoError(t, app.Run(context.Background(), []string{"test", "--config", path}))
	require.NotNil(t, loaded)
	require.Equal(t, []string{"db/schema.sql"}, loaded.Catalog)

	err := app.Run(context.Background(), []string{"test", "--config", "missing.yaml"})
	require.ErrorContains(t, err, "failed to load config missing.yaml")
}

func TestClientOptions(t *testing.T) {
	var opts clickhouse.ClientOptions
	options := func(cfg *config.Config) *cli.Command {
		return &cli.Command{
			Flags: clickhouseFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts = clientOptions(cmd, cfg)
				return nil
			},
		}
	}

	_, _, err := run(t, options(nil))
	require.NoError(t, err)
	require.False(t, opts.TLS.IsEnabled())

	_, _, err = run(t, options(nil), "--tls")
	require.NoError(t, err)
	require.Equal(t, clickhouse.TLSSettings{Enabled: true}, opts.TLS)

	cfg := &config.Config{ClickHouse: config.ClickHouse{TLS: config.TLS{
		CertFile: "client.crt",
		KeyFile:  "client.key",
		CAFile:   "ca.crt",
	}}}

	_, _, err = run(t, options(cfg))
	require.NoError(t, err)
	require.Equal(t, clickhouse.TLSSettings{CertFile: "client.crt", KeyFile: "client.key", CAFile: "ca.crt"}, opts.TLS)

	_, _, err = run(t, options(cfg), "--tls-ca", "other-ca.crt", "--tls-cert", "other.crt", "--tls-key", "other.key")
	require.NoError(t, err)
	require.Equal(t, clickhouse.TLSSettings{CertFile: "other.crt", KeyFile: "other.key", CAFile: "other-ca.crt"}, opts.TLS)
}

func TestCheckCommandSeedsOverTLS(t *testing.T) {
	ca := filepath.Join(t.TempDir(), "missing-ca.crt")
	_, _, err := run(t, check(nil), "--url", "127.0.0.1:1", "--tls-ca", ca, filepath.Join("testdata", "broken.sql"))
	require.ErrorContains(t, err, "failed to read CA file "+ca)
}
