package cmd

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/config"
	"github.com/pseudomuto/sqlcheck/pkg/format"
	"github.com/urfave/cli/v3"
)

// catalogCmd creates the command that prints the tables and queries the
// analyzed files produce, normalized by the formatter. Problems are reported
// after the output.
func catalogCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "catalog",
		Usage:     "Print the catalog and queries produced by SQL files",
		ArgsUsage: "<path>...",
		Flags: append(clickhouseFlags(),
			&cli.BoolFlag{
				Name:  "lowercase",
				Usage: "write keywords in lowercase",
			},
			&cli.BoolFlag{
				Name:  "tables-only",
				Usage: "don't print queries",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd, cfg)
			if err != nil {
				return err
			}

			s, err := analyze(ctx, cmd, cfg, cmd.Args().Slice())
			if err != nil {
				return err
			}

			opts := format.DefaultOptions()
			opts.UppercaseKeywords = !cmd.Bool("lowercase")
			f := format.New(opts)

			if err := f.Catalog(cmd.Writer, s.Catalog()); err != nil {
				return err
			}

			if !cmd.Bool("tables-only") && len(s.Queries()) > 0 {
				if _, err := io.WriteString(cmd.Writer, "\n"); err != nil {
					return errors.Wrap(err, "failed to write output")
				}
				if err := f.Queries(cmd.Writer, s.Queries()); err != nil {
					return err
				}
			}

			return report(cmd.Root().ErrWriter, cfg, s)
		},
	}
}
