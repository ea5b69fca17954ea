package granitectl

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robwalker-codes/granite-db/internal/testutil"
)

func TestLocateEnvOverride(t *testing.T) {
	t.Setenv(EnvPathOverride, "/opt/granite/granitectl")

	loc := locate()
	assert.Equal(t, "/opt/granite/granitectl", loc.Path)
	assert.Equal(t, ProvenanceEnvOverride, loc.Provenance)
}

func TestLocateEmptyOverrideFallsThrough(t *testing.T) {
	// An empty override must behave as if unset.
	t.Setenv(EnvPathOverride, "")

	loc := locate()
	assert.Equal(t, ProvenanceBuildLayout, loc.Provenance)
	assert.Equal(t, filepath.Base(filepath.Dir(loc.Path)), engineDirName)
	assert.Contains(t, filepath.Base(loc.Path), binaryName)
}

func TestResolveRecomputesPerCall(t *testing.T) {
	t.Setenv(EnvPathOverride, "/first/granitectl")
	logger := testutil.NewTestLogger(t)

	var once sync.Once
	first := resolve(logger, &once)
	require.Equal(t, "/first/granitectl", first.Path)

	t.Setenv(EnvPathOverride, "/second/granitectl")
	second := resolve(logger, &once)
	assert.Equal(t, "/second/granitectl", second.Path)
}

func TestResolveLogsOnce(t *testing.T) {
	t.Setenv(EnvPathOverride, "/opt/granite/granitectl")
	logger, count := testutil.NewCountingLogger()

	var once sync.Once
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resolve(logger, &once)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), count.Load())
}

func TestProvenanceString(t *testing.T) {
	assert.Equal(t, "environment override", ProvenanceEnvOverride.String())
	assert.Equal(t, "build layout", ProvenanceBuildLayout.String())
	assert.Equal(t, "system PATH", ProvenanceSearchPath.String())
}
