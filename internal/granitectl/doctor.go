package granitectl

import (
	"context"
	"errors"
	"os"
	"strings"
)

// ToolInfo is the diagnostics snapshot for the resolved engine binary.
type ToolInfo struct {
	Path       string `json:"path"`
	Provenance string `json:"provenance"`
	Exists     bool   `json:"exists"`
	Version    string `json:"version,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Describe reports where engine resolution points, whether anything is
// there, and the engine's version string when it can be probed. It never
// fails: an absent or broken tool is reported as data in the snapshot, not
// raised as an error.
func (c *Client) Describe(ctx context.Context) ToolInfo {
	loc := Resolve(c.logger)
	info := ToolInfo{Path: loc.Path, Provenance: loc.Provenance.String()}

	if loc.preflight() {
		if _, err := os.Stat(loc.Path); err != nil {
			info.Error = notFoundAt(loc).Error()
			return info
		}
		info.Exists = true
	}

	// Best effort: old engine builds may not support --version at all, in
	// which case the binary still exists but the probe fails.
	inv, err := c.runner.run(ctx, "--version")
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			info.Exists = false
		}
		info.Error = err.Error()
		return info
	}
	info.Exists = true
	info.Version = strings.TrimSpace(inv.stdout)
	return info
}
