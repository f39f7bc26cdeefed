package docker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultClickHouseVersion is the server image tag used when none is given.
const DefaultClickHouseVersion = "25.7"

type (
	// DockerOptions configure the ClickHouse container.
	DockerOptions struct {
		// Version is the clickhouse-server image tag (default: DefaultClickHouseVersion)
		Version string

		// InitScripts are SQL files executed once the server is up
		InitScripts []string
	}

	// Container is a ClickHouse server running in Docker.
	Container struct {
		options   DockerOptions
		container *clickhouse.ClickHouseContainer
	}
)

// New creates a container with default options.
func New() *Container {
	return NewWithOptions(DockerOptions{})
}

// NewWithOptions creates a container with custom options. Nothing runs until Start.
func NewWithOptions(opts DockerOptions) *Container {
	return &Container{options: opts}
}

// Start starts the ClickHouse container and waits for it to accept requests.
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	version := c.options.Version
	if version == "" {
		version = DefaultClickHouseVersion
	}

	scripts := make([]string, 0, len(c.options.InitScripts))
	for _, script := range c.options.InitScripts {
		abs, err := filepath.Abs(script)
		if err != nil {
			return errors.Wrapf(err, "failed to get absolute path for init script: %s", script)
		}
		scripts = append(scripts, abs)
	}

	customizers := []testcontainers.ContainerCustomizer{
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		clickhouse.WithInitScripts(scripts...),
		testcontainers.WithEnv(map[string]string{"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1"}),
		testcontainers.WithWaitStrategyAndDeadline(
			5*time.Minute,
			wait.
				NewHTTPStrategy("/").
				WithPort(nat.Port("8123/tcp")).
				WithStatusCodeMatcher(func(status int) bool {
					return status == 200
				}),
		),
	}

	container, err := clickhouse.Run(ctx,
		fmt.Sprintf("clickhouse/clickhouse-server:%s-alpine", version),
		customizers...,
	)
	if err != nil {
		return errors.Wrap(err, "failed to start ClickHouse container")
	}

	c.container = container
	return nil
}

// Stop stops and removes the container.
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil
	}

	err := c.container.Terminate(ctx)
	c.container = nil

	if err != nil {
		return errors.Wrap(err, "failed to stop ClickHouse container")
	}

	return nil
}

// GetDSN returns the clickhouse:// DSN of the running server.
func (c *Container) GetDSN(ctx context.Context) (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	dsn, err := c.container.ConnectionString(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return dsn, nil
}

// IsRunning reports whether Start succeeded and Stop wasn't called since.
func (c *Container) IsRunning() bool {
	return c.container != nil
}
