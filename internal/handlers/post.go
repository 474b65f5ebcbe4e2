package handlers

import (
	"net/http"

	"minifeed/internal/auth"
	"minifeed/internal/dto"
	"minifeed/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	feed  *service.FeedService
	users *service.UserService
}

func NewPostHandler(feed *service.FeedService, users *service.UserService) *PostHandler {
	return &PostHandler{feed: feed, users: users}
}

// List godoc
// @Summary      List the feed, newest first
// @Description  With HX-Request or X-Partial set, only the items array is returned.
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.FeedResponse
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	items, err := h.feed.Feed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if isPartial(c) {
		c.JSON(http.StatusOK, items)
		return
	}
	resp := dto.FeedResponse{Items: items}
	if id, ok := auth.UserIDFromContext(c); ok {
		if u, ok := h.users.Get(id); ok {
			viewer := userToResponse(u)
			resp.Viewer = &viewer
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreatePostRequest  true  "Post body"
// @Success      201   {object}  domain.PostView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	author, ok := auth.UserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authorization required"})
		return
	}
	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}
	post, err := h.feed.CreatePost(c.Request.Context(), author, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListComments godoc
// @Summary      List comments of a post, oldest first
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  dto.CommentsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id}/comments [get]
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := parsePostID(c, "id")
	if !ok {
		return
	}
	items, err := h.feed.Comments(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	if isPartial(c) {
		c.JSON(http.StatusOK, items)
		return
	}
	c.JSON(http.StatusOK, dto.CommentsResponse{PostID: postID, Items: items})
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                       true  "Post ID"
// @Param        body  body      dto.CreateCommentRequest  true  "Comment body"
// @Success      201   {object}  domain.CommentView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) CreateComment(c *gin.Context) {
	author, ok := auth.UserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authorization required"})
		return
	}
	postID, ok := parsePostID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}
	comment, err := h.feed.CreateComment(c.Request.Context(), postID, author, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
