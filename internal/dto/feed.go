package dto

import dom "minifeed/internal/domain"

// CreatePostRequest is the body for POST /posts. Blank content is rejected
// by the store, not by binding, so the error kind stays consistent.
type CreatePostRequest struct {
	Content string `json:"content" form:"content" binding:"max=5000"`
}

type CreateCommentRequest struct {
	Content string `json:"content" form:"content" binding:"max=2000"`
}

type FeedResponse struct {
	Items  []dom.PostView `json:"items"`
	Viewer *UserResponse  `json:"viewer,omitempty"`
}

type CommentsResponse struct {
	PostID dom.PostID        `json:"post_id"`
	Items  []dom.CommentView `json:"items"`
}
