package watch

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 4096

// digestCache remembers the digest of the content last written to each output path.
type digestCache struct {
	entries *lru.Cache[string, [sha256.Size]byte]
}

func newDigestCache(size int) (*digestCache, error) {
	entries, err := lru.New[string, [sha256.Size]byte](size)
	if err != nil {
		return nil, err
	}
	return &digestCache{entries: entries}, nil
}

// changed reports whether content differs from what was recorded for path and
// records it. Evicted paths count as changed.
func (c *digestCache) changed(path string, content []byte) bool {
	sum := sha256.Sum256(content)
	if prev, ok := c.entries.Get(path); ok && prev == sum {
		return false
	}
	c.entries.Add(path, sum)
	return true
}

func (c *digestCache) forget(path string) {
	c.entries.Remove(path)
}
