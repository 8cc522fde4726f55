package session

import "sync"

// Cache remembers the single most recent resolution so that asking for the
// other locator grammar of the same intent does not trigger a second full
// candidates pass. An entry is served only while every input that shaped it
// is unchanged: the page URL, the intent phrase, the logger in effect
// (compared by identity, not by value), the consistency-check setting and
// the hashed-class policy.
type Cache struct {
	mu sync.Mutex

	url         string
	phrase      string
	logger      Logger
	consistency bool
	hashed      bool
	resolved    *Resolved
}

// Get returns the cached resolution if it is still coherent with the given
// configuration. Entries missing either locator are never served.
func (c *Cache) Get(url, phrase string, logger Logger, consistency, hashed bool) (*Resolved, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resolved == nil {
		return nil, false
	}
	if c.url != url || c.phrase != phrase {
		return nil, false
	}
	if c.logger != logger {
		return nil, false
	}
	if c.consistency != consistency || c.hashed != hashed {
		return nil, false
	}
	if c.resolved.XPath == "" || c.resolved.CSS == "" {
		return nil, false
	}
	return c.resolved, true
}

// Put replaces the cached entry with res and the configuration it was
// resolved under.
func (c *Cache) Put(url, phrase string, logger Logger, consistency, hashed bool, res *Resolved) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.url = url
	c.phrase = phrase
	c.logger = logger
	c.consistency = consistency
	c.hashed = hashed
	c.resolved = res
}

// Invalidate drops the cached entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolved = nil
}
