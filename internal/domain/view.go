package domain

import "time"

// PostView is a Post joined with its author's name, ready for rendering.
type PostView struct {
	ID         PostID    `json:"id"`
	AuthorID   UserID    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentView is a Comment joined with its author's name.
type CommentView struct {
	ID         CommentID `json:"id"`
	PostID     PostID    `json:"post_id"`
	AuthorID   UserID    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
