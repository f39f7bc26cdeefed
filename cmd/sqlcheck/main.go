package main

import (
	"context"
	"os"

	"github.com/pseudomuto/sqlcheck/pkg/cmd"
	"github.com/pseudomuto/sqlcheck/pkg/config"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	fx.New(
		fx.NopLogger,
		fx.Supply(&cmd.Version{
			Version:   version,
			Commit:    commit,
			Timestamp: date,
		}),
		fx.Supply(os.Args),
		fx.Provide(func() context.Context { return context.Background() }),
		config.Module,
		cmd.Module,
	).Run()
}
