package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/sqlcheck/pkg/config"
	"github.com/urfave/cli/v3"
)

// check creates the command that analyzes SQL files and reports the problems
// found in them.
//
// Examples:
//
//	# Check a schema and the queries written against it
//	sqlcheck check db/schema.sql db/queries
//
//	# Check queries against the tables of a running server
//	sqlcheck check --url localhost:9000 db/queries
func check(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Analyze SQL files and report problems",
		ArgsUsage: "<path>...",
		Flags:     clickhouseFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd, cfg)
			if err != nil {
				return err
			}

			s, err := analyze(ctx, cmd, cfg, cmd.Args().Slice())
			if err != nil {
				return err
			}

			if err := report(cmd.Writer, cfg, s); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.Writer, "%d files checked, %d tables, %d queries, no problems found\n",
				len(s.Sources()), s.Catalog().Len(), len(s.Queries()))
			return err
		},
	}
}
