package config_test

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlcheck/pkg/config"
	"github.com/pseudomuto/sqlcheck/pkg/consts"
	"github.com/pseudomuto/sqlcheck/pkg/types"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/sqlcheck.yaml
var testConfigYAML string

func TestLoadConfig(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader(testConfigYAML))
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("defaults", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader("clickhouse:\n  url: localhost:9000\n"))
		require.NoError(t, err)
		require.Equal(t, []string{consts.DefaultClickHouseDatabase}, config.ClickHouse.Databases)
		require.Equal(t, ColorAuto, config.Report.Color)
		require.Empty(t, config.Catalog)

		config, err = LoadConfig(strings.NewReader("other_key: value"))
		require.NoError(t, err)
		require.Empty(t, config.ClickHouse.Databases)
	})

	t.Run("error", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader("invalid: yaml: ["))
		require.Nil(t, config)
		require.ErrorContains(t, err, "failed to unmarshal sqlcheck config")

		config, err = LoadConfig(strings.NewReader(""))
		require.Nil(t, config)
		require.ErrorContains(t, err, "failed to unmarshal sqlcheck config")

		config, err = LoadConfig(strings.NewReader("report:\n  color: sometimes\n"))
		require.Nil(t, config)
		require.ErrorContains(t, err, `invalid report color "sometimes"`)

		config, err = LoadConfig(strings.NewReader("clickhouse:\n  tls:\n    key_file: client.key\n"))
		require.Nil(t, config)
		require.ErrorContains(t, err, "cert_file and key_file must be set together")
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sqlcheck.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), consts.ModeFile))

		config, err := LoadConfigFile(path)
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("error", func(t *testing.T) {
		config, err := LoadConfigFile("nonexistent.yaml")
		require.Nil(t, config)
		require.ErrorContains(t, err, "failed to open file")

		config, err = LoadConfigFile(t.TempDir())
		require.Error(t, err)
		require.Nil(t, config)
	})
}

func TestRegistry(t *testing.T) {
	config, err := LoadConfig(strings.NewReader(testConfigYAML))
	require.NoError(t, err)

	reg, err := config.Registry()
	require.NoError(t, err)

	typ, ok := reg.Lookup("BIGINT")
	require.True(t, ok)
	require.Equal(t, types.Integer, typ)

	typ, ok = reg.Lookup("flag")
	require.True(t, ok)
	require.Equal(t, types.Boolean, typ)

	var nilConfig *Config
	reg, err = nilConfig.Registry()
	require.NoError(t, err)
	require.Equal(t, []string{"bool", "boolean", "int", "integer"}, reg.Names())

	config.Types = map[string]string{"money": "decimal"}
	_, err = config.Registry()
	require.ErrorContains(t, err, "invalid type alias money")
}

func TestColor(t *testing.T) {
	tests := []struct {
		mode     string
		terminal bool
		expected bool
	}{
		{mode: ColorAuto, terminal: true, expected: true},
		{mode: ColorAuto, terminal: false, expected: false},
		{mode: ColorAlways, terminal: false, expected: true},
		{mode: ColorNever, terminal: true, expected: false},
	}

	for _, tt := range tests {
		config := &Config{Report: Report{Color: tt.mode}}
		require.Equal(t, tt.expected, config.Color(tt.terminal), tt.mode)
	}

	var nilConfig *Config
	require.True(t, nilConfig.Color(true))
}

func validateTestConfig(t *testing.T, config *Config) {
	t.Helper()

	require.Equal(t, []string{"db/schema.sql", "db/views"}, config.Catalog)
	require.Equal(t, map[string]string{"bigint": "integer", "flag": "boolean"}, config.Types)
	require.Equal(t, "localhost:9000", config.ClickHouse.URL)
	require.Equal(t, []string{"default", "analytics"}, config.ClickHouse.Databases)
	require.Equal(t, TLS{
		CertFile: "certs/client.crt",
		KeyFile:  "certs/client.key",
		CAFile:   "certs/ca.crt",
	}, config.ClickHouse.TLS)
	require.Equal(t, ColorNever, config.Report.Color)
}
