package cache

import (
	"testing"

	dom "minifeed/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedCache_Feed(t *testing.T) {
	c := NewFeedCache()

	_, ok := c.GetFeed(0)
	assert.False(t, ok)

	c.SetFeed(3, []dom.PostView{{ID: 1, AuthorName: "alice"}})
	got, ok := c.GetFeed(3)
	require.True(t, ok)
	assert.Equal(t, []dom.PostView{{ID: 1, AuthorName: "alice"}}, got)

	_, ok = c.GetFeed(4)
	assert.False(t, ok, "newer revision must miss")
}

func TestFeedCache_OlderRevisionDoesNotReplace(t *testing.T) {
	c := NewFeedCache()
	c.SetFeed(5, []dom.PostView{{ID: 2}})
	c.SetFeed(4, []dom.PostView{{ID: 1}})

	got, ok := c.GetFeed(5)
	require.True(t, ok)
	assert.Equal(t, dom.PostID(2), got[0].ID)
}

func TestFeedCache_ReturnsCopies(t *testing.T) {
	c := NewFeedCache()
	list := []dom.PostView{{ID: 1, Content: "orig"}}
	c.SetFeed(1, list)
	list[0].Content = "mutated"

	got, _ := c.GetFeed(1)
	got[0].Content = "again"

	again, _ := c.GetFeed(1)
	assert.Equal(t, "orig", again[0].Content)
}

func TestFeedCache_CommentsPruneStale(t *testing.T) {
	c := NewFeedCache()
	c.SetComments(1, 1, []dom.CommentView{{ID: 1}})
	c.SetComments(2, 1, nil)
	assert.Equal(t, 2, c.Len())

	_, ok := c.GetComments(1, 1)
	assert.True(t, ok)

	c.SetComments(2, 2, []dom.CommentView{{ID: 2}})
	_, ok = c.GetComments(1, 1)
	assert.False(t, ok, "entries from older revisions are dropped")
	assert.Equal(t, 1, c.Len())
}

func TestFeedCache_InvalidateAll(t *testing.T) {
	c := NewFeedCache()
	c.SetFeed(1, nil)
	c.SetComments(1, 1, nil)
	c.InvalidateAll()

	assert.Equal(t, 0, c.Len())
	_, ok := c.GetFeed(1)
	assert.False(t, ok)
}
