// Package vcs provides best-effort version-control snapshots of the managed
// storage root.
package vcs

import (
	"fmt"
	"os/exec"
)

// Snapshotter captures a labeled snapshot of the lake's storage. The lake
// treats snapshots as best-effort: failures are logged, never propagated.
type Snapshotter interface {
	Snapshot(message string) error
}

// Git snapshots by shelling out to the git binary: add-all followed by a
// commit with the given message, run inside the lake root.
type Git struct {
	dir string
}

// NewGit creates a snapshotter committing inside dir. The directory must
// already be a git repository; if it is not, Snapshot fails and the caller
// logs the failure.
func NewGit(dir string) *Git {
	return &Git{dir: dir}
}

// Snapshot stages everything under the root and commits it.
func (g *Git) Snapshot(message string) error {
	add := exec.Command("git", "add", "-A")
	add.Dir = g.dir
	if out, err := add.CombinedOutput(); err != nil {
		return fmt.Errorf("git add failed: %w: %s", err, out)
	}

	commit := exec.Command("git", "commit", "-m", message)
	commit.Dir = g.dir
	if out, err := commit.CombinedOutput(); err != nil {
		return fmt.Errorf("git commit failed: %w: %s", err, out)
	}

	return nil
}
