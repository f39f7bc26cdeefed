package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the configuration file looked up in the working directory
	ConfigFile = "sqlcheck.yaml"

	// ConfigEnvVar overrides the configuration file location
	ConfigEnvVar = "SQLCHECK_CONFIG"

	// DefaultClickHouseDatabase is the database read when none are configured
	DefaultClickHouseDatabase = "default"

	// DefaultReportColor is the report color mode used when none is configured
	DefaultReportColor = "auto"
)
