package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportThenImport(t *testing.T) {
	cfg, log := testSetup(t)
	writeTestApp(t, "exported-app")

	snapPath := filepath.Join(os.Getenv("HOME"), "snap.json.xz")

	exportCmd := NewExportCmd(cfg, log)
	exportCmd.SetOut(new(bytes.Buffer))
	exportCmd.SetArgs([]string{snapPath})
	require.NoError(t, exportCmd.Execute())
	require.FileExists(t, snapPath)

	// Import on a fresh config seeds the cache, so a following list is
	// served from it.
	importCmd := NewImportCmd(cfg, log)
	importCmd.SetOut(new(bytes.Buffer))
	importCmd.SetArgs([]string{snapPath})
	require.NoError(t, importCmd.Execute())

	listCmd := NewListCmd(cfg, log)
	var out bytes.Buffer
	listCmd.SetOut(&out)
	listCmd.SetArgs([]string{"--json"})
	require.NoError(t, listCmd.Execute())

	var docs []entryDoc
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "Exported App", docs[0].Name)
}

func TestImportMissingFileFails(t *testing.T) {
	cfg, log := testSetup(t)

	cmd := NewImportCmd(cfg, log)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{filepath.Join(os.Getenv("HOME"), "missing.xz")})
	assert.Error(t, cmd.Execute())
}
