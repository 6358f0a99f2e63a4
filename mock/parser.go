// Package mock provides test doubles for diffreview interfaces.
package mock

import (
	"io"

	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.Parser = (*Parser)(nil)

// Parser is a mock implementation of diffreview.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*diffreview.Diff, error)
}

func (p *Parser) Parse(r io.Reader) (*diffreview.Diff, error) {
	return p.ParseFn(r)
}
