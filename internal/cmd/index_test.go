package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmdBuildsCache(t *testing.T) {
	cfg, log := testSetup(t)
	writeTestApp(t, "indexed-app")

	cmd := NewIndexCmd(cfg, log)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())

	require.FileExists(t, cfg.Paths.CacheDB)
}

func TestIndexCmdForceFlag(t *testing.T) {
	cfg, log := testSetup(t)
	writeTestApp(t, "some-app")

	first := NewIndexCmd(cfg, log)
	first.SetOut(new(bytes.Buffer))
	first.SetErr(new(bytes.Buffer))
	require.NoError(t, first.Execute())

	second := NewIndexCmd(cfg, log)
	second.SetOut(new(bytes.Buffer))
	second.SetErr(new(bytes.Buffer))
	second.SetArgs([]string{"--force"})
	assert.NoError(t, second.Execute())
}

func TestDoctorCmdRuns(t *testing.T) {
	cfg, log := testSetup(t)

	cmd := NewDoctorCmd(cfg, log)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	assert.NoError(t, cmd.Execute())
}
