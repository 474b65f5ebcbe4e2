package view

import (
	"testing"
	"time"

	dom "minifeed/internal/domain"
	"minifeed/internal/repo"
	"minifeed/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// danglingContent serves posts whose authors are not in any user table.
type danglingContent struct {
	posts    []dom.Post
	comments []dom.Comment
}

func (d danglingContent) ListPosts() []dom.Post { return d.posts }

func (d danglingContent) ListComments(dom.PostID) ([]dom.Comment, error) {
	return d.comments, nil
}

func TestAssembler_FeedJoinsAuthorNames(t *testing.T) {
	users := repo.NewMemUserRepo()
	alice, err := users.Register("alice", "p1")
	require.NoError(t, err)
	bob, err := users.Register("bob", "p2")
	require.NoError(t, err)
	content := repo.NewMemContentRepo(users, utils.FixedClock(at))

	_, err = content.CreatePost(alice, "first")
	require.NoError(t, err)
	_, err = content.CreatePost(bob, "second")
	require.NoError(t, err)

	feed := NewAssembler(users, content).ProjectFeed()
	require.Len(t, feed, 2)
	assert.Equal(t, dom.PostView{ID: 2, AuthorID: bob, AuthorName: "bob", Content: "second", CreatedAt: at}, feed[0])
	assert.Equal(t, dom.PostView{ID: 1, AuthorID: alice, AuthorName: "alice", Content: "first", CreatedAt: at}, feed[1])
}

func TestAssembler_EmptyFeed(t *testing.T) {
	users := repo.NewMemUserRepo()
	a := NewAssembler(users, repo.NewMemContentRepo(users, nil))
	feed := a.ProjectFeed()
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestAssembler_Comments(t *testing.T) {
	users := repo.NewMemUserRepo()
	alice, _ := users.Register("alice", "p1")
	bob, _ := users.Register("bob", "p2")
	content := repo.NewMemContentRepo(users, utils.FixedClock(at))
	post, err := content.CreatePost(alice, "hello")
	require.NoError(t, err)
	_, err = content.CreateComment(post, bob, "hi")
	require.NoError(t, err)

	a := NewAssembler(users, content)
	list, err := a.ProjectComments(post)
	require.NoError(t, err)
	assert.Equal(t, []dom.CommentView{{ID: 1, PostID: post, AuthorID: bob, AuthorName: "bob", Content: "hi", CreatedAt: at}}, list)

	_, err = a.ProjectComments(9)
	assert.ErrorIs(t, err, dom.ErrPostNotFound)
}

func TestAssembler_UnknownAuthorSentinel(t *testing.T) {
	content := danglingContent{
		posts:    []dom.Post{{ID: 1, AuthorID: 42, Content: "orphan", CreatedAt: at}},
		comments: []dom.Comment{{ID: 1, PostID: 1, AuthorID: 43, Content: "orphan", CreatedAt: at}},
	}
	a := NewAssembler(repo.NewMemUserRepo(), content)

	feed := a.ProjectFeed()
	require.Len(t, feed, 1)
	assert.Equal(t, UnknownAuthor, feed[0].AuthorName)

	list, err := a.ProjectComments(1)
	require.NoError(t, err)
	assert.Equal(t, UnknownAuthor, list[0].AuthorName)
}

func TestAssembler_SingleMatchesList(t *testing.T) {
	users := repo.NewMemUserRepo()
	alice, _ := users.Register("alice", "p1")
	content := repo.NewMemContentRepo(users, utils.FixedClock(at))
	postID, err := content.CreatePost(alice, "hello")
	require.NoError(t, err)
	commentID, err := content.CreateComment(postID, alice, "self reply")
	require.NoError(t, err)

	a := NewAssembler(users, content)

	post, ok := content.GetPost(postID)
	require.True(t, ok)
	assert.Equal(t, a.ProjectFeed()[0], a.ProjectPost(post))

	comment, ok := content.GetComment(commentID)
	require.True(t, ok)
	list, err := a.ProjectComments(postID)
	require.NoError(t, err)
	assert.Equal(t, list[0], a.ProjectComment(comment))
}
