package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"minifeed/internal/auth"
	"minifeed/internal/cache"
	dom "minifeed/internal/domain"
	"minifeed/internal/metrics"
	"minifeed/internal/repo"
	"minifeed/internal/utils"
	"minifeed/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var at = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	users   *UserService
	feed    *FeedService
	content *repo.MemContentRepo
}

func newFixture(t *testing.T, withCache bool) fixture {
	t.Helper()
	users := repo.NewMemUserRepo()
	content := repo.NewMemContentRepo(users, utils.FixedClock(at))
	var c *cache.FeedCache
	if withCache {
		c = cache.NewFeedCache()
	}
	logger := zap.NewNop()
	m := metrics.New()
	return fixture{
		users:   NewUserService(users, logger, m),
		feed:    NewFeedService(content, view.NewAssembler(users, content), c, logger, m),
		content: content,
	}
}

func TestFullScenario(t *testing.T) {
	for _, withCache := range []bool{false, true} {
		f := newFixture(t, withCache)
		ctx := context.Background()
		sessions := auth.NewBinder[string]()

		alice, err := f.users.Register(ctx, "alice", "p1")
		require.NoError(t, err)
		assert.Equal(t, dom.UserID(1), alice.ID)
		bob, err := f.users.Register(ctx, "bob", "p2")
		require.NoError(t, err)
		assert.Equal(t, dom.UserID(2), bob.ID)
		sessions.Bind("bob-token", bob.ID)

		post, err := f.feed.CreatePost(ctx, alice.ID, "hello")
		require.NoError(t, err)
		assert.Equal(t, dom.PostID(1), post.ID)

		feed, err := f.feed.Feed(ctx)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, dom.PostView{ID: 1, AuthorID: alice.ID, AuthorName: "alice", Content: "hello", CreatedAt: at}, feed[0])

		author, err := sessions.RequireAuth("bob-token")
		require.NoError(t, err)
		comment, err := f.feed.CreateComment(ctx, post.ID, author, "hi")
		require.NoError(t, err)
		assert.Equal(t, dom.CommentID(1), comment.ID)

		comments, err := f.feed.Comments(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, dom.CommentID(1), comments[0].ID)
		assert.Equal(t, "hi", comments[0].Content)
		assert.Equal(t, "bob", comments[0].AuthorName)

		sessions.Unbind("bob-token")
		_, err = sessions.RequireAuth("bob-token")
		assert.ErrorIs(t, err, dom.ErrUnauthenticated)
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "   ", "p1")
	assert.ErrorIs(t, err, dom.ErrInvalidInput)
	_, err = f.users.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, dom.ErrInvalidInput)

	u, err := f.users.Register(ctx, "  alice ", "p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)

	_, err = f.users.Register(ctx, "alice", "p2")
	assert.ErrorIs(t, err, dom.ErrDuplicateName)

	got, ok := f.users.Get(u.ID)
	require.True(t, ok)
	assert.Equal(t, "p1", got.Credential)
}

func TestValidateCredentials(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	u, err := f.users.Register(ctx, "alice", "p1")
	require.NoError(t, err)

	got, err := f.users.ValidateCredentials(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = f.users.ValidateCredentials(ctx, "alice", "nope")
	assert.ErrorIs(t, err, dom.ErrAuthFailed)
	_, err = f.users.ValidateCredentials(ctx, "carol", "p1")
	assert.ErrorIs(t, err, dom.ErrAuthFailed)
	_, err = f.users.ValidateCredentials(ctx, "", "")
	assert.ErrorIs(t, err, dom.ErrInvalidInput)
}

func TestFeedSeesWritesThroughCache(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	u, err := f.users.Register(ctx, "alice", "p1")
	require.NoError(t, err)

	feed, err := f.feed.Feed(ctx)
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = f.feed.CreatePost(ctx, u.ID, "one")
	require.NoError(t, err)
	feed, err = f.feed.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	_, err = f.feed.CreatePost(ctx, u.ID, "two")
	require.NoError(t, err)
	feed, err = f.feed.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "two", feed[0].Content, "same timestamp falls back to newest ID first")

	comments, err := f.feed.Comments(ctx, feed[0].ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
	_, err = f.feed.CreateComment(ctx, feed[0].ID, u.ID, "reply")
	require.NoError(t, err)
	comments, err = f.feed.Comments(ctx, feed[0].ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestCreateErrorsLeaveStoreUnchanged(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	u, err := f.users.Register(ctx, "alice", "p1")
	require.NoError(t, err)
	post, err := f.feed.CreatePost(ctx, u.ID, "keep")
	require.NoError(t, err)

	_, err = f.feed.CreatePost(ctx, u.ID, "  ")
	assert.ErrorIs(t, err, dom.ErrEmptyContent)
	_, err = f.feed.CreatePost(ctx, 9, "x")
	assert.ErrorIs(t, err, dom.ErrUnknownAuthor)
	_, err = f.feed.CreateComment(ctx, 77, u.ID, "x")
	assert.ErrorIs(t, err, dom.ErrPostNotFound)
	_, err = f.feed.CreateComment(ctx, post.ID, u.ID, "")
	assert.ErrorIs(t, err, dom.ErrEmptyContent)

	_, err = f.feed.Comments(ctx, 77)
	assert.ErrorIs(t, err, dom.ErrPostNotFound)

	assert.Equal(t, repo.ContentStats{Posts: 1}, f.content.Stats())
}

func TestConcurrentFeedReads(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	u, err := f.users.Register(ctx, "alice", "p1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.feed.CreatePost(ctx, u.ID, "post")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			feed, err := f.feed.Feed(ctx)
			assert.NoError(t, err)
			for _, p := range feed {
				assert.Equal(t, "alice", p.AuthorName)
			}
		}()
	}
	wg.Wait()

	feed, err := f.feed.Feed(ctx)
	require.NoError(t, err)
	assert.Len(t, feed, 20)
}
