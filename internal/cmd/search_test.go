package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmdJSONOutput(t *testing.T) {
	cfg, log := testSetup(t)
	writeTestApp(t, "firefox")
	writeTestApp(t, "files")

	cmd := NewSearchCmd(cfg, log)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fire", "--json"})
	require.NoError(t, cmd.Execute())

	var docs []resultDoc
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "Firefox", docs[0].Name)
	assert.Equal(t, "programfiles", docs[0].Origin)
}

func TestSearchCmdNoMatches(t *testing.T) {
	cfg, log := testSetup(t)
	writeTestApp(t, "firefox")

	cmd := NewSearchCmd(cfg, log)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"zzzzz", "--json"})
	require.NoError(t, cmd.Execute())

	var docs []resultDoc
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	assert.Empty(t, docs)
}

func TestSearchCmdLimitFlag(t *testing.T) {
	cfg, log := testSetup(t)
	writeTestApp(t, "app-one")
	writeTestApp(t, "app-two")
	writeTestApp(t, "app-three")

	cmd := NewSearchCmd(cfg, log)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"app", "--json", "--limit", "2"})
	require.NoError(t, cmd.Execute())

	var docs []resultDoc
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	assert.Len(t, docs, 2)
}

func TestSearchCmdRequiresQuery(t *testing.T) {
	cfg, log := testSetup(t)

	cmd := NewSearchCmd(cfg, log)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
