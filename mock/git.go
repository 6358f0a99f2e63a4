package mock

import (
	"context"

	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.GitRunner = (*GitRunner)(nil)

// GitRunner is a mock implementation of diffreview.GitRunner.
type GitRunner struct {
	DiffFn func(ctx context.Context, repoPath, from, to string) (string, error)
}

func (g *GitRunner) Diff(ctx context.Context, repoPath, from, to string) (string, error) {
	return g.DiffFn(ctx, repoPath, from, to)
}
