package repository

import (
	"context"

	"github.com/angple/arena-backend/internal/domain"
	"gorm.io/gorm"
)

// ActivityRepository user activity log data access
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Activity, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListByUser returns activities newest first; id breaks created_at ties so pages never overlap
func (r *activityRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Activity, error) {
	var activities []domain.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Activity{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
