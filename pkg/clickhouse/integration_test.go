package clickhouse_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	. "github.com/pseudomuto/sqlcheck/pkg/clickhouse"
	"github.com/pseudomuto/sqlcheck/pkg/docker"
	"github.com/pseudomuto/sqlcheck/pkg/types"
	"github.com/stretchr/testify/require"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	if err := exec.CommandContext(t.Context(), "docker", "ps").Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

func TestLoadCatalogIntegration(t *testing.T) {
	skipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container := docker.NewWithOptions(docker.DockerOptions{
		InitScripts: []string{filepath.Join("testdata", "schema.sql")},
	})
	require.NoError(t, container.Start(ctx))
	t.Cleanup(func() { _ = container.Stop(context.Background()) })

	dsn, err := container.GetDSN(ctx)
	require.NoError(t, err)

	client, err := NewClient(ctx, dsn)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	version, err := client.GetVersion(ctx)
	require.NoError(t, err)
	require.Positive(t, version.Major)

	cat := catalog.New()
	skipped, err := client.LoadCatalog(ctx, cat, types.Prelude(), "default", "analytics")
	require.NoError(t, err)
	require.Equal(t, []string{
		"analytics.events.kind",
		"default.users.id",
		"default.users.active",
		"default.users.age",
		"default.users.name",
	}, skipped)

	events, ok := cat.Table("events")
	require.True(t, ok)
	require.Equal(t, 2, events.Len())

	users, ok := cat.Table("users")
	require.True(t, ok)
	require.Equal(t, 1, users.Len())
}

func TestNewClientConnectionError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewClient(ctx, "127.0.0.1:1")
	require.ErrorContains(t, err, "failed to connect to ClickHouse")
}
