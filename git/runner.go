// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.GitRunner = (*Runner)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Diff returns the unified diff between revisions from and to of the
// repository at repoPath. An empty to compares from against the working
// tree. Empty from and to compare the index against the working tree.
func (r *Runner) Diff(ctx context.Context, repoPath, from, to string) (string, error) {
	args := []string{"-C", repoPath, "diff", "--no-color", "--no-ext-diff", "--find-renames"}
	for _, rev := range []string{from, to} {
		if rev == "" {
			continue
		}
		if strings.HasPrefix(rev, "-") {
			return "", fmt.Errorf("git diff: invalid revision %q", rev)
		}
		args = append(args, rev)
	}
	args = append(args, "--")
	return r.run(ctx, "diff", args...)
}

func (r *Runner) run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s failed: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", name, err)
	}
	return string(output), nil
}
