package config

import (
	"io"
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlcheck/pkg/consts"
	"github.com/pseudomuto/sqlcheck/pkg/types"
	"gopkg.in/yaml.v3"
)

// Report color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type (
	// ClickHouse configures the server the catalog can be seeded from.
	ClickHouse struct {
		// URL is the server address: host:port or a clickhouse:// URL. No
		// server is contacted when it is empty.
		URL string `yaml:"url,omitempty"`

		// Databases lists the databases whose tables are loaded into the catalog
		Databases []string `yaml:"databases,omitempty"`

		TLS TLS `yaml:"tls"`
	}

	// TLS configures an encrypted connection to the server. Setting any of the
	// files enables it.
	TLS struct {
		Enabled bool `yaml:"enabled,omitempty"`

		// CertFile and KeyFile hold the client certificate for mutual TLS
		CertFile string `yaml:"cert_file,omitempty"`
		KeyFile  string `yaml:"key_file,omitempty"`

		// CAFile verifies the server instead of the system roots
		CAFile string `yaml:"ca_file,omitempty"`
	}

	// Report configures how diagnostics are printed.
	Report struct {
		// Color is one of auto, always or never
		Color string `yaml:"color,omitempty"`
	}

	// Config is the sqlcheck project configuration.
	Config struct {
		// Catalog lists DDL files (or directories) analyzed before the checked
		// files to seed the catalog
		Catalog []string `yaml:"catalog,omitempty"`

		// Types maps extra type names to built-in types
		Types map[string]string `yaml:"types,omitempty"`

		ClickHouse ClickHouse `yaml:"clickhouse"`
		Report     Report     `yaml:"report"`
	}
)

// LoadConfig parses a configuration from the provided io.Reader and fills in
// defaults for the values it leaves out.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader(`
//	catalog:
//	  - db/schema.sql
//	types:
//	  bigint: integer
//	`))
//	if err != nil {
//		return err
//	}
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal sqlcheck config")
	}

	if cfg.ClickHouse.URL != "" && len(cfg.ClickHouse.Databases) == 0 {
		cfg.ClickHouse.Databases = []string{consts.DefaultClickHouseDatabase}
	}
	if cfg.Report.Color == "" {
		cfg.Report.Color = consts.DefaultReportColor
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Validate checks values that can't be checked while decoding.
func (c *Config) Validate() error {
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Report.Color) {
		return errors.Errorf("invalid report color %q: must be one of auto, always or never", c.Report.Color)
	}

	if tls := c.ClickHouse.TLS; (tls.CertFile == "") != (tls.KeyFile == "") {
		return errors.New("clickhouse.tls cert_file and key_file must be set together")
	}

	return nil
}

// Registry returns the standard prelude extended with the configured type
// aliases.
func (c *Config) Registry() (*types.Registry, error) {
	reg := types.Prelude()
	if c == nil {
		return reg, nil
	}

	names := make([]string, 0, len(c.Types))
	for name := range c.Types {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := reg.Alias(name, c.Types[name]); err != nil {
			return nil, errors.Wrapf(err, "invalid type alias %s", name)
		}
	}

	return reg, nil
}

// Color resolves the report color mode. Auto enables color when isTerminal is true.
func (c *Config) Color(isTerminal bool) bool {
	mode := consts.DefaultReportColor
	if c != nil {
		mode = c.Report.Color
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}
