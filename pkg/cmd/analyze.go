package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	"github.com/pseudomuto/sqlcheck/pkg/clickhouse"
	"github.com/pseudomuto/sqlcheck/pkg/config"
	"github.com/pseudomuto/sqlcheck/pkg/consts"
	"github.com/pseudomuto/sqlcheck/pkg/diag"
	"github.com/pseudomuto/sqlcheck/pkg/session"
	"github.com/urfave/cli/v3"
)

// ErrAnalysisFailed is returned by commands when the analyzed SQL has errors.
var ErrAnalysisFailed = errors.New("analysis failed")

// clickhouseFlags select the server the catalog is seeded from and how to
// connect to it.
func clickhouseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Usage:   "seed the catalog from the ClickHouse server at this DSN",
			Sources: cli.EnvVars("SQLCHECK_CLICKHOUSE_URL"),
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.BoolFlag{
			Name:    "tls",
			Usage:   "connect to ClickHouse over TLS",
			Sources: cli.EnvVars("SQLCHECK_CLICKHOUSE_TLS"),
		},
		&cli.StringFlag{
			Name:      "tls-cert",
			Usage:     "client certificate for mutual TLS",
			Sources:   cli.EnvVars("SQLCHECK_CLICKHOUSE_TLS_CERT"),
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "tls-key",
			Usage:     "client key for mutual TLS",
			Sources:   cli.EnvVars("SQLCHECK_CLICKHOUSE_TLS_KEY"),
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "tls-ca",
			Usage:     "CA certificate used to verify the server",
			Sources:   cli.EnvVars("SQLCHECK_CLICKHOUSE_TLS_CA"),
			TakesFile: true,
		},
	}
}

// clientOptions returns the configured TLS settings with any TLS flags applied
// on top.
func clientOptions(cmd *cli.Command, cfg *config.Config) clickhouse.ClientOptions {
	var settings clickhouse.TLSSettings
	if cfg != nil {
		tls := cfg.ClickHouse.TLS
		settings = clickhouse.TLSSettings{
			Enabled:  tls.Enabled,
			CertFile: tls.CertFile,
			KeyFile:  tls.KeyFile,
			CAFile:   tls.CAFile,
		}
	}

	if cmd.Bool("tls") {
		settings.Enabled = true
	}
	if v := cmd.String("tls-cert"); v != "" {
		settings.CertFile = v
	}
	if v := cmd.String("tls-key"); v != "" {
		settings.KeyFile = v
	}
	if v := cmd.String("tls-ca"); v != "" {
		settings.CAFile = v
	}

	return clickhouse.ClientOptions{TLS: settings}
}

// analyze runs a session over the configured catalog sources followed by paths.
func analyze(ctx context.Context, cmd *cli.Command, cfg *config.Config, paths []string) (*session.Session, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one path argument is required")
	}

	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	cat := catalog.New()
	if err := seedFromServer(ctx, cmd, cfg, cat); err != nil {
		return nil, err
	}

	s := session.New(session.Options{Catalog: cat, Types: reg, Logger: slog.Default()})
	if cfg != nil {
		for _, path := range cfg.Catalog {
			if err := s.RunPath(ctx, path); err != nil {
				return nil, err
			}
		}
	}

	for _, path := range paths {
		if err := s.RunPath(ctx, path); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func seedFromServer(ctx context.Context, cmd *cli.Command, cfg *config.Config, cat *catalog.Catalog) error {
	url := cmd.String("url")
	databases := []string{consts.DefaultClickHouseDatabase}
	if cfg != nil {
		if url == "" {
			url = cfg.ClickHouse.URL
		}
		if len(cfg.ClickHouse.Databases) > 0 {
			databases = cfg.ClickHouse.Databases
		}
	}

	if url == "" {
		return nil
	}

	client, err := clickhouse.NewClientWithOptions(ctx, url, clientOptions(cmd, cfg))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	skipped, err := client.LoadCatalog(ctx, cat, reg, databases...)
	if err != nil {
		return errors.Wrap(err, "failed to load catalog from ClickHouse")
	}

	slog.Info("Loaded catalog from ClickHouse", "tables", cat.Len(), "databases", databases)
	for _, col := range skipped {
		slog.Warn("Skipped column with unsupported type", "column", col)
	}

	return nil
}

// report writes the session's diagnostics and returns ErrAnalysisFailed when
// any of them is an error.
func report(w io.Writer, cfg *config.Config, s *session.Session) error {
	if !s.HasErrors() {
		return nil
	}

	if err := s.Sink().WriteReport(w, diag.ReportOptions{Color: cfg.Color(isTerminal(w))}); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	return errors.Wrapf(ErrAnalysisFailed, "%d problems found", s.Sink().Len())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
