package repo

import (
	"sort"
	"sync"

	dom "minifeed/internal/domain"
	"minifeed/internal/utils"
)

// AuthorChecker reports whether a user exists. UserRepo satisfies it.
type AuthorChecker interface {
	Exists(id dom.UserID) bool
}

// ContentStats is a point-in-time size of the content tables.
type ContentStats struct {
	Posts    int
	Comments int
}

// ContentRepo provides post and comment storage.
type ContentRepo interface {
	CreatePost(authorID dom.UserID, content string) (dom.PostID, error)
	CreateComment(postID dom.PostID, authorID dom.UserID, content string) (dom.CommentID, error)
	GetPost(id dom.PostID) (dom.Post, bool)
	GetComment(id dom.CommentID) (dom.Comment, bool)
	ListPosts() []dom.Post
	ListComments(postID dom.PostID) ([]dom.Comment, error)
	Revision() uint64
	Stats() ContentStats
}

// MemContentRepo implements ContentRepo in process memory.
// posts[i] holds PostID i+1 and comments[i] holds CommentID i+1.
type MemContentRepo struct {
	authors AuthorChecker
	now     utils.Clock

	mu       sync.RWMutex
	posts    []dom.Post
	comments []dom.Comment
	byPost   map[dom.PostID][]dom.CommentID
	rev      uint64
}

// NewMemContentRepo returns an empty MemContentRepo. If now is nil the system clock is used.
func NewMemContentRepo(authors AuthorChecker, now utils.Clock) *MemContentRepo {
	if now == nil {
		now = utils.SystemClock
	}
	return &MemContentRepo{
		authors: authors,
		now:     now,
		byPost:  make(map[dom.PostID][]dom.CommentID),
	}
}

// CreatePost stores a new post by authorID and returns its ID.
func (r *MemContentRepo) CreatePost(authorID dom.UserID, content string) (dom.PostID, error) {
	if utils.IsBlank(content) {
		return 0, dom.ErrEmptyContent
	}
	if !r.authors.Exists(authorID) {
		return 0, dom.ErrUnknownAuthor
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	id := dom.PostID(len(r.posts) + 1)
	r.posts = append(r.posts, dom.Post{
		ID:        id,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: r.now(),
	})
	r.rev++
	return id, nil
}

// CreateComment stores a new comment on postID and returns its ID.
// Checks run in order: post exists, content non-empty, author exists.
func (r *MemContentRepo) CreateComment(postID dom.PostID, authorID dom.UserID, content string) (dom.CommentID, error) {
	// Users are never deleted, so checking the author before taking the lock is safe.
	authorOK := r.authors.Exists(authorID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.postLocked(postID); !ok {
		return 0, dom.ErrPostNotFound
	}
	if utils.IsBlank(content) {
		return 0, dom.ErrEmptyContent
	}
	if !authorOK {
		return 0, dom.ErrUnknownAuthor
	}
	id := dom.CommentID(len(r.comments) + 1)
	r.comments = append(r.comments, dom.Comment{
		ID:        id,
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: r.now(),
	})
	r.byPost[postID] = append(r.byPost[postID], id)
	r.rev++
	return id, nil
}

func (r *MemContentRepo) GetPost(id dom.PostID) (dom.Post, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.postLocked(id)
}

func (r *MemContentRepo) GetComment(id dom.CommentID) (dom.Comment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 1 || int(id) > len(r.comments) {
		return dom.Comment{}, false
	}
	return r.comments[id-1], true
}

// ListPosts returns every post, newest first. Equal timestamps fall back to
// descending ID so the order is deterministic.
func (r *MemContentRepo) ListPosts() []dom.Post {
	r.mu.RLock()
	list := make([]dom.Post, len(r.posts))
	copy(list, r.posts)
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return list
}

// ListComments returns the comments on postID, oldest first, ties by ascending ID.
func (r *MemContentRepo) ListComments(postID dom.PostID) ([]dom.Comment, error) {
	r.mu.RLock()
	if _, ok := r.postLocked(postID); !ok {
		r.mu.RUnlock()
		return nil, dom.ErrPostNotFound
	}
	ids := r.byPost[postID]
	list := make([]dom.Comment, 0, len(ids))
	for _, id := range ids {
		list = append(list, r.comments[id-1])
	}
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return list, nil
}

// Revision changes every time a post or comment is inserted.
func (r *MemContentRepo) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rev
}

func (r *MemContentRepo) Stats() ContentStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return ContentStats{Posts: len(r.posts), Comments: len(r.comments)}
}

func (r *MemContentRepo) postLocked(id dom.PostID) (dom.Post, bool) {
	if id < 1 || int(id) > len(r.posts) {
		return dom.Post{}, false
	}
	return r.posts[id-1], true
}
