// Package granitectl is the adapter between the IDE and the granitectl
// command-line engine. It resolves the engine binary, invokes it under a hard
// timeout, and hides the difference between the modern JSON output mode and
// the legacy plain-text output of older engine builds behind one result shape.
package granitectl

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// EnvPathOverride names the environment variable that pins the engine binary
// to an explicit path, bypassing build-layout and PATH resolution.
const EnvPathOverride = "GRANITECTL_PATH"

// engineDirName is the directory the release layout reserves for the engine
// binary, a sibling of the directory holding the IDE binary itself.
const engineDirName = "engine"

const binaryName = "granitectl"

// Provenance records how the engine binary's path was chosen. It determines
// whether existence is checked before spawning and how a missing binary is
// reported: explicit paths can be stat'd up front, while PATH resolution can
// only be probed by attempting execution.
type Provenance int

const (
	// ProvenanceEnvOverride means EnvPathOverride supplied the path verbatim.
	ProvenanceEnvOverride Provenance = iota
	// ProvenanceBuildLayout means the path was derived from the running
	// binary's own location using the conventional release layout.
	ProvenanceBuildLayout
	// ProvenanceSearchPath means the bare binary name is handed to the
	// operating system's PATH lookup at spawn time.
	ProvenanceSearchPath
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceEnvOverride:
		return "environment override"
	case ProvenanceBuildLayout:
		return "build layout"
	case ProvenanceSearchPath:
		return "system PATH"
	default:
		return "unknown"
	}
}

// Location is a resolved engine binary path tagged with its provenance.
type Location struct {
	Path       string
	Provenance Provenance
}

// preflight reports whether existence should be checked before spawning.
func (l Location) preflight() bool {
	return l.Provenance != ProvenanceSearchPath
}

var resolveLogOnce sync.Once

// Resolve picks the engine binary to invoke. Priority: the environment
// override, then the conventional build layout next to the running binary,
// then the bare name left to the operating system's PATH lookup. The decision
// is recomputed on every call since the environment may change between calls,
// but it is logged only once per process.
func Resolve(logger *slog.Logger) Location {
	return resolve(logger, &resolveLogOnce)
}

func resolve(logger *slog.Logger, once *sync.Once) Location {
	loc := locate()
	once.Do(func() {
		logger.Info("resolved granitectl",
			"path", loc.Path,
			"provenance", loc.Provenance.String())
	})
	return loc
}

func locate() Location {
	if p := os.Getenv(EnvPathOverride); p != "" {
		return Location{Path: p, Provenance: ProvenanceEnvOverride}
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		path := filepath.Join(filepath.Dir(dir), engineDirName, binaryName+exeSuffix())
		return Location{Path: path, Provenance: ProvenanceBuildLayout}
	}
	return Location{Path: binaryName + exeSuffix(), Provenance: ProvenanceSearchPath}
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
