package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightsCmd_Use(t *testing.T) {
	assert.Equal(t, "highlights [doc-id]", highlightsCmd.Use)
}

func TestHighlightsCmd_ReplacesFromFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTestFile(t, "note.png", "annotated note")
	out, err := executeCommand("ingest", path)
	require.NoError(t, err)
	id := idPattern.FindString(out)
	require.NotEmpty(t, id)

	payload := writeTestFile(t, "highlights.json", `[{"page": 1, "text": "annotated"}]`)

	out, err = executeCommand("highlights", "--file", payload, id)
	require.NoError(t, err)
	assert.Contains(t, out, "1 entries")

	out, err = executeCommand("get", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Highlights: 1")
}

func TestHighlightsCmd_UnknownDocumentFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	payload := writeTestFile(t, "highlights.json", `[]`)

	_, err := executeCommand("highlights", "--file", payload, "00000000000000000000000000000000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestHighlightsCmd_InvalidJSONFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	payload := writeTestFile(t, "highlights.json", `{"not": "an array"}`)

	_, err := executeCommand("highlights", "--file", payload, "00000000000000000000000000000000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing highlights")
}

func TestGetCmd_UnknownDocumentFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("get", "00000000000000000000000000000000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("search", "nothing-matches-this")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}
