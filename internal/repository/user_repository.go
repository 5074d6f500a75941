package repository

import (
	"context"

	"gorm.io/gorm"

	"gymbook/internal/model"
)

// PageSize is the fixed page size of every list endpoint.
const PageSize = 10

// UserFilter holds the optional list filters; zero values are skipped and
// the supplied ones are ANDed together.
type UserFilter struct {
	Name             string
	LastName         string
	RegistrationDate string
	Hour             string
	State            string
}

// UserPatch is a partial update: only non-nil fields are applied.
type UserPatch struct {
	Name             *string
	LastName         *string
	RegistrationDate *string
	Hour             *string
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter UserFilter, page int) ([]model.User, int64, error)
	Update(ctx context.Context, id uint, patch UserPatch) (*model.User, error)
	Deactivate(ctx context.Context, id uint) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID loads a user together with its memberships.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Memberships").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of users with their memberships plus the unpaged total.
func (r *userRepository) List(ctx context.Context, filter UserFilter, page int) ([]model.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.LastName != "" {
		q = q.Where("last_name LIKE ?", "%"+filter.LastName+"%")
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}
	if filter.RegistrationDate != "" {
		q = q.Where("registration_date = ?", filter.RegistrationDate)
	}
	if filter.Hour != "" {
		q = q.Where("hour LIKE ?", "%"+filter.Hour+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := q.Preload("Memberships").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update applies the non-nil patch fields and reloads the record.
func (r *userRepository) Update(ctx context.Context, id uint, patch UserPatch) (*model.User, error) {
	cols := map[string]any{}
	if patch.Name != nil {
		cols["name"] = *patch.Name
	}
	if patch.LastName != nil {
		cols["last_name"] = *patch.LastName
	}
	if patch.RegistrationDate != nil {
		cols["registration_date"] = *patch.RegistrationDate
	}
	if patch.Hour != nil {
		cols["hour"] = *patch.Hour
	}
	if len(cols) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// Deactivate flips an ACTIVE user to INACTIVE. Returns gorm.ErrRecordNotFound
// when no active user matches, which makes repeat calls a no-op.
func (r *userRepository) Deactivate(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND state = ?", id, model.UserStateActive).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	user.State = model.UserStateInactive
	if err := r.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
