package format_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlcheck/pkg/format"
	"github.com/pseudomuto/sqlcheck/pkg/session"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestGoldenFiles(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.in.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "No *.in.sql files found in testdata directory")

	for _, inputFile := range matches {
		// "example.in.sql" -> "example.sql"
		outputName := strings.TrimSuffix(filepath.Base(inputFile), ".in.sql") + ".sql"

		t.Run(outputName, func(t *testing.T) {
			input, err := os.ReadFile(inputFile)
			require.NoError(t, err)

			s := session.New(session.Options{Logger: slog.New(slog.DiscardHandler)})
			require.NoError(t, s.Run(context.Background(), inputFile, bytes.NewReader(input)))

			f := NewDefault()

			var buf bytes.Buffer
			require.NoError(t, f.Catalog(&buf, s.Catalog()))
			buf.WriteString("\n")
			require.NoError(t, f.Queries(&buf, s.Queries()))

			golden.Assert(t, buf.String(), outputName)
		})
	}
}
