package clickhouse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?`)

// VersionInfo is a parsed ClickHouse server version.
type VersionInfo struct {
	Major int
	Minor int
	Patch int
	Raw   string
}

// String returns the version as major.minor.patch.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// GetVersion retrieves and parses the server version.
func (c *Client) GetVersion(ctx context.Context) (*VersionInfo, error) {
	var raw string
	if err := c.conn.QueryRow(ctx, "SELECT version()").Scan(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to query ClickHouse version")
	}

	return parseVersion(raw)
}

// parseVersion accepts the formats ClickHouse reports, e.g. "25.7.1.3997",
// "21.10.3.9-testing" and "21.10.3.9 (official build)".
func parseVersion(raw string) (*VersionInfo, error) {
	cleaned := strings.TrimSpace(raw)
	if i := strings.IndexAny(cleaned, " -"); i != -1 {
		cleaned = cleaned[:i]
	}

	m := versionPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, errors.Errorf("failed to parse ClickHouse version: %q", raw)
	}

	v := &VersionInfo{Raw: raw}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}

	return v, nil
}
