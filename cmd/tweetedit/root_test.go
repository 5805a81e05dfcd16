package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanity-io/pathdoc/internal/tweet"
)

var fixedTime = time.Date(2024, 3, 5, 9, 30, 15, 0, time.FixedZone("ACDT", 10*3600+1800))

const fixedCreatedAt = "Tue Mar 05 09:30:15 +1030 2024"

// fixedGenerators makes generated IDs and timestamps reproducible.
func fixedGenerators(t *testing.T) {
	t.Helper()
	original := newIDGenerator
	newIDGenerator = func(i int64) *tweet.IDGenerator {
		return tweet.NewIDGenerator(func() time.Time { return fixedTime }, 42+i)
	}
	t.Cleanup(func() { newIDGenerator = original })
}

func newTestRootCmd() *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(
		newNewCmd(),
		newGetCmd(),
		newHasCmd(),
		newSetCmd(),
		newEnsureCmd(),
		newDeleteCmd(),
		newGeoCmd(),
		newPathsCmd(),
		newStampCmd(),
		newDiffCmd(),
		newVersionCmd(),
	)
	return cmd
}

// execute runs the command line with stdin as standard input and returns
// what was printed. Logs go to logFile, or to a temporary file when empty.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeWithLog(t, filepath.Join(t.TempDir(), "tweetedit.log"), stdin, args...)
}

func executeWithLog(t *testing.T, logFile, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newTestRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--" + logFileFlagName, logFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readTemp(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "tweetedit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{prettyFlagName, formatFlagName, logFileFlagName, verboseFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	out, err := execute(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "dotted paths")
	assert.Contains(t, out, "stamp")
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, value := range []string{"json", "YAML", " msgpack "} {
		_, err := parseOutputFormat(value)
		require.NoError(t, err, value)
	}

	_, err := parseOutputFormat("xml")
	require.Error(t, err)

	_, err = execute(t, `{}`, "--format", "xml", "get", "-", "a")
	require.ErrorContains(t, err, "unknown output format")
}

func TestConfigureLogger_WritesDocumentDiagnostics(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "diagnostics.log")

	out, err := executeWithLog(t, logFile, `{"a":{}}`, "-v", "has", "-", "a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	logged := readTemp(t, logFile)
	assert.Contains(t, logged, "level=WARN")
	assert.Contains(t, logged, `msg="document has failed"`)
	assert.Contains(t, logged, "path=a.b.c")
	assert.Contains(t, logged, "level=DEBUG")
}

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	if strings.Contains(output, "version: unknown") {
		assert.Contains(t, output, "version: unknown")
		return
	}

	assert.Contains(t, output, "tweetedit version")
	assert.Contains(t, output, "go version")
}

func TestReadConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, readConfig(), "a missing config file is fine")

	require.NoError(t, os.WriteFile(configFileName, []byte("output: [\n"), 0o644))
	require.Error(t, readConfig())
}

func TestConfigErrorIsLogged(t *testing.T) {
	original := configErr
	configErr = errors.New("yaml: line 1: did not find expected node content")
	t.Cleanup(func() { configErr = original })

	logFile := filepath.Join(t.TempDir(), "config.log")
	_, err := executeWithLog(t, logFile, "", "version")
	require.NoError(t, err)

	logged := readTemp(t, logFile)
	assert.Contains(t, logged, "level=WARN")
	assert.Contains(t, logged, `msg="config file ignored"`)
	assert.Contains(t, logged, "did not find expected node content")
}
