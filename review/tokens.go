// Package review holds the state of a diff review session that is shared by
// every file: how lines are tokenized, which changes are selected, and which
// files are completed.
package review

import (
	"context"
	"runtime"
	"sync"

	"github.com/fwojciec/diffreview"
	"github.com/fwojciec/diffreview/tokenize"
	"github.com/fwojciec/diffreview/whitespace"
	"golang.org/x/sync/errgroup"
)

// BuildEnhancers returns the enhancers used to tokenize hunks for review.
// Edits are always marked. Unless whitespace changes are highlighted, the
// leading and trailing whitespace of every line is marked as well so that
// edits inside it are rendered without emphasis.
func BuildEnhancers(hunks []diffreview.Hunk, highlightWhitespaceChanges bool, opts ...tokenize.EditOption) []diffreview.Enhancer {
	enhancers := []diffreview.Enhancer{tokenize.MarkEdits(hunks, opts...)}
	if !highlightWhitespaceChanges {
		enhancers = append(enhancers, whitespace.Enhancer(hunks))
	}
	return enhancers
}

// TokenizeFile tokenizes hunks for review. Syntax highlighting is not used.
func TokenizeFile(hunks []diffreview.Hunk, highlightWhitespaceChanges bool, opts ...tokenize.EditOption) tokenize.Tokens {
	return tokenize.Tokenize(hunks, tokenize.Options{
		Highlight: false,
		Enhancers: BuildEnhancers(hunks, highlightWhitespaceChanges, opts...),
	})
}

type cacheKey struct {
	file      int
	highlight bool
}

// TokenCache memoizes TokenizeFile per file index and whitespace setting.
// A cache belongs to a single diff. It is safe for concurrent use.
type TokenCache struct {
	opts []tokenize.EditOption

	mu      sync.Mutex
	entries map[cacheKey]tokenize.Tokens
}

// NewTokenCache creates an empty cache that tokenizes with opts.
func NewTokenCache(opts ...tokenize.EditOption) *TokenCache {
	return &TokenCache{
		opts:    opts,
		entries: make(map[cacheKey]tokenize.Tokens),
	}
}

// Tokens returns the tokens of file at index, tokenizing it on first use.
func (c *TokenCache) Tokens(index int, file diffreview.FileDiff, highlightWhitespaceChanges bool) tokenize.Tokens {
	key := cacheKey{file: index, highlight: highlightWhitespaceChanges}

	c.mu.Lock()
	tokens, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return tokens
	}

	tokens = TokenizeFile(file.Hunks, highlightWhitespaceChanges, c.opts...)

	c.mu.Lock()
	c.entries[key] = tokens
	c.mu.Unlock()
	return tokens
}

// Len returns the number of cached entries.
func (c *TokenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Warm tokenizes every file concurrently. It stops early when ctx is done.
func (c *TokenCache) Warm(ctx context.Context, files []diffreview.FileDiff, highlightWhitespaceChanges bool) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Tokens(i, files[i], highlightWhitespaceChanges)
			return nil
		})
	}

	return g.Wait()
}
