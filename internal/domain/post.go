package domain

import "time"

type PostID int64

type CommentID int64

// Post is a top-level feed entry. Immutable once stored.
type Post struct {
	ID        PostID
	AuthorID  UserID
	Content   string
	CreatedAt time.Time
}

// Comment belongs to exactly one existing Post.
type Comment struct {
	ID        CommentID
	PostID    PostID
	AuthorID  UserID
	Content   string
	CreatedAt time.Time
}
