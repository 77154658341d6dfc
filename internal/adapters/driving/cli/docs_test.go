package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

func TestDocsCmd_Use(t *testing.T) {
	assert.Equal(t, "docs", docsCmd.Use)
}

func TestDocsCmd_HasSubcommands(t *testing.T) {
	commands := docsCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "list")
	assert.Contains(t, names, "clear")
}

func TestDocsCmd_HasDateFlag(t *testing.T) {
	flag := docsCmd.PersistentFlags().Lookup("date")
	require.NotNil(t, flag)
	assert.Equal(t, "d", flag.Shorthand)
}

func TestDocsListCmd_PrintsDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"docs", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "1 indexed document(s):")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "From: alice@example.com")
	assert.Contains(t, out, "Received: 2025-01-15T09:00:00Z")
}

func TestDocsListCmd_EmptyIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docStore.(*mockDocStore).docs = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"docs", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Index is empty.")
}

func TestDocsListCmd_ListErrorSurfaces(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docStore.(*mockDocStore).listErr = assert.AnError

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"docs", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing documents")
}

func TestDocsClearCmd_ClearsIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"docs", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Index cleared, 1 document(s) removed.")
	assert.True(t, docStore.(*mockDocStore).deleteAll)
}

func TestDocsClearCmd_CountErrorSurfaces(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docStore.(*mockDocStore).countErr = assert.AnError

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"docs", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "counting documents")
	assert.False(t, docStore.(*mockDocStore).deleteAll)
}

func TestDocsClearCmd_DeleteErrorSurfaces(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docStore.(*mockDocStore).deleteErr = assert.AnError

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"docs", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clearing index")
}

func TestDocsListCmd_NoSubjectStillListed(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docStore.(*mockDocStore).docs = []domain.Document{
		{ID: "msg-9", Metadata: domain.EmailMetadata{From: "noreply@example.com"}},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"docs", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "From: noreply@example.com")
}
