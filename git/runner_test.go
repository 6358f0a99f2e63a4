package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fwojciec/diffreview/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository with one commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()

	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	writeFile(t, dir, "README.md", "# Test Repo\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")

	return dir
}

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command git %v failed: %s", args, string(output))
	return string(output)
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
}

func TestRunner_Diff(t *testing.T) {
	t.Parallel()

	t.Run("returns the diff between two revisions", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)

		writeFile(t, dir, "README.md", "# Test Repo  \nmore\n")
		runGit(t, dir, "commit", "-am", "Update readme")

		out, err := git.NewRunner().Diff(context.Background(), dir, "HEAD~1", "HEAD")

		require.NoError(t, err)
		assert.Contains(t, out, "diff --git a/README.md b/README.md")
		assert.Contains(t, out, "-# Test Repo\n")
		assert.Contains(t, out, "+# Test Repo  \n")
		assert.Contains(t, out, "+more\n")
	})

	t.Run("compares against the working tree without a target", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)

		writeFile(t, dir, "README.md", "# Changed\n")

		out, err := git.NewRunner().Diff(context.Background(), dir, "HEAD", "")

		require.NoError(t, err)
		assert.Contains(t, out, "+# Changed")
	})

	t.Run("returns empty output without changes", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)

		out, err := git.NewRunner().Diff(context.Background(), dir, "HEAD", "HEAD")

		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("reports unknown revisions", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)

		_, err := git.NewRunner().Diff(context.Background(), dir, "no-such-rev", "HEAD")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "git diff failed")
	})

	t.Run("rejects revisions that look like flags", func(t *testing.T) {
		t.Parallel()

		_, err := git.NewRunner().Diff(context.Background(), t.TempDir(), "--output=/tmp/x", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid revision")
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := git.NewRunner().Diff(ctx, dir, "HEAD", "")

		require.Error(t, err)
	})
}
