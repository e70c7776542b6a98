// Package cliutil holds small CLI support helpers shared by the
// coup-solver subcommands.
package cliutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// timestampFormat mirrors the reference CLI's run-directory naming
// convention (original_source/coup_gto/cli.py's _ensure_out_dir).
const timestampFormat = "20060102-150405"

// EnsureOutDir returns outDir if non-empty, else allocates
// "runs/<timestamp>"; either way the directory is created if missing.
func EnsureOutDir(outDir string, now time.Time) (string, error) {
	if outDir == "" {
		outDir = filepath.Join("runs", now.UTC().Format(timestampFormat))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("cliutil: creating output directory %s: %w", outDir, err)
	}
	return outDir, nil
}
