// Package docker runs a disposable ClickHouse server for integration tests.
//
// Containers are managed through testcontainers-go. Callers seed the server
// with init scripts and connect using the DSN the container reports:
//
//	c := docker.NewWithOptions(docker.DockerOptions{
//		InitScripts: []string{"testdata/schema.sql"},
//	})
//	if err := c.Start(ctx); err != nil {
//		return err
//	}
//	defer c.Stop(ctx)
//
//	dsn, err := c.GetDSN(ctx)
package docker
