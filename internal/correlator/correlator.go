// Package correlator remembers the caption of a media group so that the
// captionless items of the same group can reuse it.
package correlator

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of media groups remembered by default.
const DefaultSize = 10

// Cache maps media group IDs to captions with least-recently-used eviction.
//
// Only Record affects recency: Lookup is a pure read, so a group stays warm
// because of its captioned message, not because of its siblings.
type Cache struct {
	groups *lru.Cache[string, string]
}

// New creates a Cache holding at most size groups.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	groups, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &Cache{groups: groups}, nil
}

// Record stores the caption of a group and marks it most recently used.
func (c *Cache) Record(groupID, caption string) {
	c.groups.Add(groupID, caption)
}

// Lookup returns the caption recorded for a group.
func (c *Cache) Lookup(groupID string) (string, bool) {
	return c.groups.Peek(groupID)
}

// Len returns the number of remembered groups.
func (c *Cache) Len() int {
	return c.groups.Len()
}

// Resolve returns the caption that applies to a message with the given group ID
// and own caption (either may be empty). A captioned group message is recorded,
// a captionless one borrows the recorded caption.
func (c *Cache) Resolve(groupID, caption string) (string, bool) {
	switch {
	case groupID != "" && caption != "":
		c.Record(groupID, caption)
		return caption, true
	case groupID != "":
		return c.Lookup(groupID)
	case caption != "":
		return caption, true
	default:
		return "", false
	}
}
