// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.Clipboard = (*System)(nil)

// System implements diffreview.Clipboard with the platform clipboard
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
type System struct{}

// NewSystem returns the system clipboard.
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
