package repository

import (
	"context"

	"gorm.io/gorm"

	"gymbook/internal/model"
)

// MembershipFilter holds the optional list filters, ANDed when supplied.
type MembershipFilter struct {
	UserID    *uint
	Pay       string
	StartDate string
}

// MembershipPatch is a partial update: only non-nil fields are applied.
type MembershipPatch struct {
	UserID    *uint
	StartDate *string
	EndDate   *string
	Pay       *string
	Balance   *int64
}

// MembershipRepository defines membership persistence operations.
type MembershipRepository interface {
	Create(ctx context.Context, membership *model.Membership) error
	FindByID(ctx context.Context, id uint) (*model.Membership, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter MembershipFilter, page int) ([]model.Membership, int64, error)
	Update(ctx context.Context, id uint, patch MembershipPatch) (*model.Membership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository builds a GORM-backed repository.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// FindByID loads a membership together with its owning user.
func (r *membershipRepository) FindByID(ctx context.Context, id uint) (*model.Membership, error) {
	var membership model.Membership
	if err := r.db.WithContext(ctx).Preload("User").First(&membership, id).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Membership{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of memberships with their owning users plus the total.
func (r *membershipRepository) List(ctx context.Context, filter MembershipFilter, page int) ([]model.Membership, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Membership{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Pay != "" {
		q = q.Where("pay = ?", filter.Pay)
	}
	if filter.StartDate != "" {
		q = q.Where("start_date = ?", filter.StartDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var memberships []model.Membership
	err := q.Preload("User").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&memberships).Error
	if err != nil {
		return nil, 0, err
	}
	return memberships, total, nil
}

// Update applies the non-nil patch fields and reloads the record.
func (r *membershipRepository) Update(ctx context.Context, id uint, patch MembershipPatch) (*model.Membership, error) {
	cols := map[string]any{}
	if patch.UserID != nil {
		cols["user_id"] = *patch.UserID
	}
	if patch.StartDate != nil {
		cols["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		cols["end_date"] = *patch.EndDate
	}
	if patch.Pay != nil {
		cols["pay"] = *patch.Pay
	}
	if patch.Balance != nil {
		cols["balance"] = *patch.Balance
	}
	if len(cols) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.Membership{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}
