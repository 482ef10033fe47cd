package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmdJSONOutput(t *testing.T) {
	cfg, log := testSetup(t)
	writeTestApp(t, "zebra")
	writeTestApp(t, "apple")

	cmd := NewListCmd(cfg, log)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})
	require.NoError(t, cmd.Execute())

	var docs []entryDoc
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "Apple", docs[0].Name)
	assert.Equal(t, "Zebra", docs[1].Name)
}

func TestListCmdEmptyIndex(t *testing.T) {
	cfg, log := testSetup(t)

	cmd := NewListCmd(cfg, log)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})
	require.NoError(t, cmd.Execute())

	var docs []entryDoc
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	assert.Empty(t, docs)
}
