package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/config"
	"github.com/pseudomuto/sqlcheck/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run builds the root sqlcheck command from the registered commands and runs
// it with the process arguments when the fx application starts. The
// application shuts down with exit code 1 when the command fails.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "sqlcheck",
		Usage: "A semantic checker for SQL schemas and queries",
		Description: `sqlcheck resolves the tables, columns and types used by CREATE TABLE,
SELECT and INSERT statements and reports every problem it finds, without
executing anything.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the sqlcheck config file",
				Sources: cli.EnvVars(consts.ConfigEnvVar),
				Value:   consts.ConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every analyzed statement",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool("verbose") {
				level = slog.LevelDebug
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return ctx, nil
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

// loadConfig returns the config named by an explicit --config flag, or cfg
// (the one discovered at startup) otherwise.
func loadConfig(cmd *cli.Command, cfg *config.Config) (*config.Config, error) {
	if !cmd.IsSet("config") {
		return cfg, nil
	}

	path := cmd.String("config")
	c, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config %s", path)
	}

	return c, nil
}
