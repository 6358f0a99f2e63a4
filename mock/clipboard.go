package mock

import "github.com/fwojciec/diffreview"

// Compile-time interface verification.
var _ diffreview.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of diffreview.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
