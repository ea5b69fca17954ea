package granitectl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "granitectl")
	t.Setenv(EnvPathOverride, missing)

	client, fake := newFakeClient(t)
	info := client.Describe(context.Background())

	assert.Equal(t, missing, info.Path)
	assert.Equal(t, "environment override", info.Provenance)
	assert.False(t, info.Exists)
	assert.Contains(t, info.Error, missing)
	// Absence is decided by the pre-check; no probe is attempted.
	assert.Empty(t, fake.calls)
}

func TestDescribeVersionProbe(t *testing.T) {
	t.Setenv(EnvPathOverride, touchFile(t, "granitectl"))

	client, fake := newFakeClient(t, fakeResponse{inv: stdout("granitectl 2.4.0\n")})
	info := client.Describe(context.Background())

	assert.True(t, info.Exists)
	assert.Equal(t, "granitectl 2.4.0", info.Version)
	assert.Empty(t, info.Error)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"--version"}, fake.calls[0])
}

func TestDescribeOldToolWithoutVersionFlag(t *testing.T) {
	t.Setenv(EnvPathOverride, touchFile(t, "granitectl"))

	client, _ := newFakeClient(t, fakeResponse{
		err: &ExitError{Stderr: "unknown command: --version"},
	})
	info := client.Describe(context.Background())

	// The binary exists even though the probe failed.
	assert.True(t, info.Exists)
	assert.Empty(t, info.Version)
	assert.Contains(t, info.Error, "unknown command")
}
