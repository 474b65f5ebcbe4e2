// Package view joins stored content with author identity into read-only
// projections for the renderer. Nothing here mutates the stores.
package view

import (
	dom "minifeed/internal/domain"
)

// UnknownAuthor is shown when an author ID does not resolve to a user.
const UnknownAuthor = "unknown"

// UserLookup resolves user IDs. repo.UserRepo satisfies it.
type UserLookup interface {
	Get(id dom.UserID) (dom.User, bool)
}

// ContentReader is the read side of the content store.
type ContentReader interface {
	ListPosts() []dom.Post
	ListComments(postID dom.PostID) ([]dom.Comment, error)
}

// Assembler builds PostView and CommentView projections.
type Assembler struct {
	users   UserLookup
	content ContentReader
}

func NewAssembler(users UserLookup, content ContentReader) *Assembler {
	return &Assembler{users: users, content: content}
}

// ProjectFeed returns every post, newest first, with author names.
func (a *Assembler) ProjectFeed() []dom.PostView {
	posts := a.content.ListPosts()
	out := make([]dom.PostView, len(posts))
	for i, p := range posts {
		out[i] = a.ProjectPost(p)
	}
	return out
}

// ProjectComments returns the comments on postID, oldest first, with author names.
func (a *Assembler) ProjectComments(postID dom.PostID) ([]dom.CommentView, error) {
	comments, err := a.content.ListComments(postID)
	if err != nil {
		return nil, err
	}
	out := make([]dom.CommentView, len(comments))
	for i, c := range comments {
		out[i] = a.ProjectComment(c)
	}
	return out, nil
}

// ProjectPost echoes a single post using the same join as ProjectFeed.
func (a *Assembler) ProjectPost(p dom.Post) dom.PostView {
	return dom.PostView{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: a.authorName(p.AuthorID),
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
	}
}

// ProjectComment echoes a single comment using the same join as ProjectComments.
func (a *Assembler) ProjectComment(c dom.Comment) dom.CommentView {
	return dom.CommentView{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: a.authorName(c.AuthorID),
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

func (a *Assembler) authorName(id dom.UserID) string {
	if u, ok := a.users.Get(id); ok {
		return u.Name
	}
	return UnknownAuthor
}
