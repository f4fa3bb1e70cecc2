// Package cache provides a thread-safe LRU cache for parsed expression
// scripts, keyed on the script's source text.
//
// The cache is used by the engine's Transform entry point when caching is
// enabled via WithCache. It avoids re-lexing and re-parsing the same
// script on every call, which is especially valuable when the same
// transformation is applied to many different input documents.
//
// # Example
//
//	c := cache.New(1024)
//	node, err := c.GetOrCompile(script, parse)
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dsonnet-io/dsonnet/pkg/ast"
)

// Cache is a thread-safe LRU cache for parsed ast.Node trees, keyed on
// script source text. Once the capacity is reached, the least recently
// used entry is evicted.
//
// Safe for concurrent use by multiple goroutines — golang-lru/v2's Cache
// holds its own internal lock.
type Cache struct {
	inner *lru.Cache[string, *ast.Node]
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, a default of 256 is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	inner, err := lru.New[string, *ast.Node](capacity)
	if err != nil {
		// Only returned for a non-positive size, already guarded above.
		panic(err)
	}
	return &Cache{inner: inner}
}

// Get retrieves a parsed script from the cache by its source text.
// Returns (node, true) if found and promotes the entry to MRU.
// Returns (nil, false) if not present.
func (c *Cache) Get(script string) (*ast.Node, bool) {
	return c.inner.Get(script)
}

// Set inserts or replaces a parsed script in the cache.
// If at capacity, the least recently used entry is evicted first.
func (c *Cache) Set(script string, node *ast.Node) {
	c.inner.Add(script, node)
}

// GetOrCompile retrieves the parsed node for script from cache, or calls
// parse() to produce it, caches the result, and returns it.
// parse runs on every cache miss; errors are not cached, so a script that
// fails to parse is parsed again on each call.
func (c *Cache) GetOrCompile(script string, parse func() (*ast.Node, error)) (*ast.Node, error) {
	if node, ok := c.Get(script); ok {
		return node, nil
	}
	node, err := parse()
	if err != nil {
		return nil, err
	}
	c.Set(script, node)
	return node, nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	return c.inner.Len()
}

// Invalidate removes a single entry from the cache.
func (c *Cache) Invalidate(script string) {
	c.inner.Remove(script)
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.inner.Purge()
}
