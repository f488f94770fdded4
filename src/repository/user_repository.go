package repository

import (
	"context"
	"errors"

	"financequest/src/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepositoryWithDB(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetUserByID returns the user, or (nil, nil) when unknown.
func (r *GormUserRepository) GetUserByID(
	ctx context.Context,
	id string,
) (*model.User, error) {

	var u model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// NamesByIDs maps user ids to display names. Unknown ids are absent.
func (r *GormUserRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []model.User
	if err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u.Name
	}
	return out, nil
}

func (r *GormUserRepository) Create(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}
