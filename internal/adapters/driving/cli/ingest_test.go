package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`[0-9a-f]{32}`)

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file...]", ingestCmd.Use)
}

func TestIngestCmd_RequiresAtLeastOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("ingest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestIngestCmd_StoresFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTestFile(t, "invoice.png", "invoice total 42")

	out, err := executeCommand("ingest", path)

	require.NoError(t, err)
	assert.Contains(t, out, "stored and indexed")
	assert.Regexp(t, idPattern, out)
}

func TestIngestCmd_MultipleFilesReportedInOrder(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	first := writeTestFile(t, "a.png", "first document")
	second := writeTestFile(t, "b.png", "second document")

	out, err := executeCommand("ingest", first, second)

	require.NoError(t, err)
	assert.Less(t, strings.Index(out, first), strings.Index(out, second))
}

func TestIngestCmd_MissingFileFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("ingest", "/nonexistent/file.png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest failed")
}

func TestIngestThenGetRoundTrip(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTestFile(t, "contract.png", "signed contract text")

	out, err := executeCommand("ingest", path)
	require.NoError(t, err)
	id := idPattern.FindString(out)
	require.NotEmpty(t, id)

	out, err = executeCommand("get", id)
	require.NoError(t, err)
	assert.Contains(t, out, "contract.png")
	assert.Contains(t, out, "signed contract text")
}

func TestIngestThenSearchFindsDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTestFile(t, "minutes.png", "quarterly meeting minutes")

	_, err := executeCommand("ingest", path)
	require.NoError(t, err)

	out, err := executeCommand("search", "quarterly")
	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "minutes.png")
}
