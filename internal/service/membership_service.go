package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "gymbook/internal/errors"
	"gymbook/internal/model"
	"gymbook/internal/repository"
)

// MembershipService exposes membership domain operations.
type MembershipService interface {
	List(ctx context.Context, filter repository.MembershipFilter, page int) ([]model.Membership, int64, error)
	Create(ctx context.Context, membership *model.Membership) (*model.Membership, error)
	Update(ctx context.Context, id uint, patch repository.MembershipPatch) (*model.Membership, error)
	Exists(ctx context.Context, id uint) (bool, error)
	UserExists(ctx context.Context, id uint) (bool, error)
}

type membershipService struct {
	repo     repository.MembershipRepository
	userRepo repository.UserRepository
	cache    Cache
}

// NewMembershipService builds a MembershipService over both repositories;
// the user repository backs the foreign-key existence rule. The cache is
// needed because cached users embed their memberships.
func NewMembershipService(repo repository.MembershipRepository, userRepo repository.UserRepository, cache Cache) MembershipService {
	return &membershipService{repo: repo, userRepo: userRepo, cache: cache}
}

func (s *membershipService) List(ctx context.Context, filter repository.MembershipFilter, page int) ([]model.Membership, int64, error) {
	return s.repo.List(ctx, filter, page)
}

// Create persists a new membership; the state always starts ACTIVE. The
// owner's cached read is invalidated so it picks up the new membership.
func (s *membershipService) Create(ctx context.Context, membership *model.Membership) (*model.Membership, error) {
	membership.State = model.MembershipStateActive
	if err := s.repo.Create(ctx, membership); err != nil {
		return nil, err
	}
	s.invalidateOwner(ctx, membership.UserID)
	return membership, nil
}

// Update applies a partial update to an existing membership, invalidating
// the cached reads of the old owner and, when reassigned, the new one.
func (s *membershipService) Update(ctx context.Context, id uint, patch repository.MembershipPatch) (*model.Membership, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, err
	}

	membership, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, err
	}

	s.invalidateOwner(ctx, existing.UserID)
	if patch.UserID != nil && *patch.UserID != existing.UserID {
		s.invalidateOwner(ctx, *patch.UserID)
	}
	return membership, nil
}

func (s *membershipService) Exists(ctx context.Context, id uint) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *membershipService) UserExists(ctx context.Context, id uint) (bool, error) {
	return s.userRepo.Exists(ctx, id)
}

func (s *membershipService) invalidateOwner(ctx context.Context, userID uint) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, userCacheKey(userID))
	}
}
