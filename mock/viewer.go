package mock

import (
	"context"

	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of diffreview.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, diff *diffreview.Diff) error
}

func (v *Viewer) View(ctx context.Context, diff *diffreview.Diff) error {
	return v.ViewFn(ctx, diff)
}
