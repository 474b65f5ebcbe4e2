package service

import (
	"context"
	"strconv"

	"minifeed/internal/cache"
	dom "minifeed/internal/domain"
	"minifeed/internal/logging"
	"minifeed/internal/metrics"
	"minifeed/internal/repo"
	"minifeed/internal/view"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FeedService creates posts and comments and serves their projections.
type FeedService struct {
	content repo.ContentRepo
	views   *view.Assembler
	cache   *cache.FeedCache
	sf      singleflight.Group
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewFeedService creates a FeedService. If c is nil, caching is disabled.
func NewFeedService(content repo.ContentRepo, views *view.Assembler, c *cache.FeedCache, logger *zap.Logger, m *metrics.Metrics) *FeedService {
	return &FeedService{content: content, views: views, cache: c, logger: logger, metrics: m}
}

// CreatePost stores a post by author and echoes its projection.
func (s *FeedService) CreatePost(ctx context.Context, author dom.UserID, content string) (dom.PostView, error) {
	id, err := s.content.CreatePost(author, content)
	if err != nil {
		return dom.PostView{}, err
	}
	p, _ := s.content.GetPost(id)
	s.metrics.PostCreated()
	logging.FromContext(ctx, s.logger).Info("post created",
		zap.Int64("post_id", int64(id)), zap.Int64("author_id", int64(author)))
	return s.views.ProjectPost(p), nil
}

// CreateComment stores a comment on postID by author and echoes its projection.
func (s *FeedService) CreateComment(ctx context.Context, postID dom.PostID, author dom.UserID, content string) (dom.CommentView, error) {
	id, err := s.content.CreateComment(postID, author, content)
	if err != nil {
		return dom.CommentView{}, err
	}
	cm, _ := s.content.GetComment(id)
	s.metrics.CommentCreated()
	logging.FromContext(ctx, s.logger).Info("comment created",
		zap.Int64("comment_id", int64(id)), zap.Int64("post_id", int64(postID)),
		zap.Int64("author_id", int64(author)))
	return s.views.ProjectComment(cm), nil
}

// Feed returns all posts, newest first.
func (s *FeedService) Feed(ctx context.Context) ([]dom.PostView, error) {
	if s.cache == nil {
		return s.views.ProjectFeed(), nil
	}
	rev := s.content.Revision()
	key := "feed:" + strconv.FormatUint(rev, 10)
	v, _, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, ok := s.cache.GetFeed(rev); ok {
			return list, nil
		}
		list := s.views.ProjectFeed()
		s.cache.SetFeed(rev, list)
		logging.FromContext(ctx, s.logger).Debug("feed assembled",
			zap.Uint64("revision", rev), zap.Int("posts", len(list)))
		return list, nil
	})
	return v.([]dom.PostView), nil
}

// Comments returns the comments on postID, oldest first.
func (s *FeedService) Comments(ctx context.Context, postID dom.PostID) ([]dom.CommentView, error) {
	if s.cache == nil {
		return s.views.ProjectComments(postID)
	}
	rev := s.content.Revision()
	key := "comments:" + strconv.FormatInt(int64(postID), 10) + ":" + strconv.FormatUint(rev, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, ok := s.cache.GetComments(postID, rev); ok {
			return list, nil
		}
		list, err := s.views.ProjectComments(postID)
		if err != nil {
			return nil, err
		}
		s.cache.SetComments(postID, rev, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.CommentView), nil
}
