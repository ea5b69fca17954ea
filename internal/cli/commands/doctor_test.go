package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robwalker-codes/granite-db/internal/granitectl"
)

func TestDoctorCommandMissingEngine(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "granitectl")
	t.Setenv(granitectl.EnvPathOverride, missing)

	cmd := NewDoctorCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, missing)
	assert.Contains(t, out, "environment override")
	assert.Contains(t, out, "not found")
}

func TestDoctorCommandJSONOutput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "granitectl")
	t.Setenv(granitectl.EnvPathOverride, missing)

	cmd := NewDoctorCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json"})

	require.NoError(t, cmd.Execute())

	var info granitectl.ToolInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, missing, info.Path)
	assert.False(t, info.Exists)
}
