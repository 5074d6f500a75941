package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "gymbook/internal/errors"
	"gymbook/internal/model"
	"gymbook/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// Cache is the subset of the redis client the services depend on.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// userCacheKey is shared with the membership service: memberships are
// embedded in the cached user, so membership writes invalidate it too.
func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// UserService exposes user domain operations.
type UserService interface {
	List(ctx context.Context, filter repository.UserFilter, page int) ([]model.User, int64, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Update(ctx context.Context, id uint, patch repository.UserPatch) (*model.User, error)
	Deactivate(ctx context.Context, id uint) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type userService struct {
	repo  repository.UserRepository
	cache Cache
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache Cache) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) List(ctx context.Context, filter repository.UserFilter, page int) ([]model.User, int64, error) {
	return s.repo.List(ctx, filter, page)
}

// Get retrieves a user with memberships by id, with caching.
func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	if s.cache != nil {
		if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
			var cached model.User
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(user); err == nil {
			_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
		}
	}
	return user, nil
}

// Create persists a new user; the state always starts ACTIVE.
func (s *userService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.State = model.UserStateActive
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, user.ID)
	return user, nil
}

// Update applies a partial update to an existing user.
func (s *userService) Update(ctx context.Context, id uint, patch repository.UserPatch) (*model.User, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return user, nil
}

// Deactivate transitions an ACTIVE user to INACTIVE. Users are never
// hard-deleted; an already inactive or unknown id reports not found.
func (s *userService) Deactivate(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrActiveUserNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, id)
	return user, nil
}

func (s *userService) Exists(ctx context.Context, id uint) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *userService) invalidate(ctx context.Context, id uint) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, userCacheKey(id))
	}
}
