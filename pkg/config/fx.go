package config

import (
	"os"

	"github.com/pseudomuto/sqlcheck/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads the file named by SQLCHECK_CONFIG, falling back to sqlcheck.yaml.
	// Returns a nil config when the fallback doesn't exist so sqlcheck works
	// without one.
	func() (*Config, error) {
		if path := os.Getenv(consts.ConfigEnvVar); path != "" {
			return LoadConfigFile(path)
		}

		if _, err := os.Stat(consts.ConfigFile); os.IsNotExist(err) {
			return nil, nil
		}

		return LoadConfigFile(consts.ConfigFile)
	},
))
