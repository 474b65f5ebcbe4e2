package cache

import (
	"slices"
	"sync"

	dom "minifeed/internal/domain"
)

// FeedCache keeps the last assembled projections in process memory.
// Every entry is tagged with the content revision it was built from and is
// only served while the caller's current revision matches.
type FeedCache struct {
	mu       sync.Mutex
	feed     *entry[[]dom.PostView]
	comments map[dom.PostID]entry[[]dom.CommentView]
}

type entry[T any] struct {
	rev uint64
	val T
}

// NewFeedCache returns an empty FeedCache.
func NewFeedCache() *FeedCache {
	return &FeedCache{comments: make(map[dom.PostID]entry[[]dom.CommentView])}
}

// GetFeed returns the cached feed for rev, or false on a miss.
func (c *FeedCache) GetFeed(rev uint64) ([]dom.PostView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.feed == nil || c.feed.rev != rev {
		return nil, false
	}
	return slices.Clone(c.feed.val), true
}

// SetFeed stores the feed built at rev. An older revision never replaces a newer one.
func (c *FeedCache) SetFeed(rev uint64, list []dom.PostView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.feed != nil && c.feed.rev > rev {
		return
	}
	c.feed = &entry[[]dom.PostView]{rev: rev, val: slices.Clone(list)}
}

// GetComments returns the cached comment list of postID for rev, or false on a miss.
func (c *FeedCache) GetComments(postID dom.PostID, rev uint64) ([]dom.CommentView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.comments[postID]
	if !ok || e.rev != rev {
		return nil, false
	}
	return slices.Clone(e.val), true
}

// SetComments stores the comment list of postID built at rev and drops
// entries from older revisions.
func (c *FeedCache) SetComments(postID dom.PostID, rev uint64, list []dom.CommentView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.comments[postID]; ok && e.rev > rev {
		return
	}
	for id, e := range c.comments {
		if e.rev < rev {
			delete(c.comments, id)
		}
	}
	c.comments[postID] = entry[[]dom.CommentView]{rev: rev, val: slices.Clone(list)}
}

// InvalidateAll removes every cached projection.
func (c *FeedCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feed = nil
	clear(c.comments)
}

// Len returns the number of cached projections, feed included.
func (c *FeedCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.comments)
	if c.feed != nil {
		n++
	}
	return n
}
