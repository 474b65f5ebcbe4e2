package service

import (
	"context"
	"errors"
	"strings"

	dom "minifeed/internal/domain"
	"minifeed/internal/logging"
	"minifeed/internal/metrics"
	"minifeed/internal/repo"

	"go.uber.org/zap"
)

// UserService handles registration and credential checks.
type UserService struct {
	repo    repo.UserRepo
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewUserService returns a new UserService. m may be nil.
func NewUserService(repo repo.UserRepo, logger *zap.Logger, m *metrics.Metrics) *UserService {
	return &UserService{repo: repo, logger: logger, metrics: m}
}

// Register creates a user. The name is trimmed; the credential is stored as given.
func (s *UserService) Register(ctx context.Context, name, credential string) (dom.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || credential == "" {
		return dom.User{}, dom.ErrInvalidInput
	}
	id, err := s.repo.Register(name, credential)
	if err != nil {
		return dom.User{}, err
	}
	s.metrics.UserRegistered()
	logging.FromContext(ctx, s.logger).Info("user registered",
		zap.Int64("user_id", int64(id)), zap.String("name", name))
	return dom.User{ID: id, Name: name, Credential: credential}, nil
}

// ValidateCredentials checks name and credential; returns the user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, name, credential string) (dom.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || credential == "" {
		return dom.User{}, dom.ErrInvalidInput
	}
	log := logging.FromContext(ctx, s.logger)
	id, err := s.repo.Authenticate(name, credential)
	if err != nil {
		s.metrics.Login(false)
		if errors.Is(err, dom.ErrAuthFailed) {
			log.Info("login rejected", zap.String("name", name))
		}
		return dom.User{}, err
	}
	s.metrics.Login(true)
	log.Info("user logged in", zap.Int64("user_id", int64(id)))
	u, _ := s.repo.Get(id)
	return u, nil
}

// Get returns the user by ID.
func (s *UserService) Get(id dom.UserID) (dom.User, bool) {
	return s.repo.Get(id)
}
