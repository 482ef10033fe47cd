package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCmd(t *testing.T) {
	t.Parallel()
	cmd := NewVersionCmd("1.2.3")
	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "appdex version 1.2.3\n", out.String())
}

func TestVersionCmdDevDefault(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	cmd := NewVersionCmd("dev")
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "dev")
}
