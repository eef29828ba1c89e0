package activitylog

import (
	"context"

	"fittrack/entities"

	"gorm.io/gorm"
)

type (
	ActivityLogRepository interface {
		CreateActivityLog(ctx context.Context, activity *entities.ActivityLog) error
		GetActivityLogByID(ctx context.Context, id string) (*entities.ActivityLog, error)
		GetActivityLogsByUserID(ctx context.Context, userID string) ([]entities.ActivityLog, error)
		DeleteActivityLog(ctx context.Context, id string) error
	}

	activityLogRepository struct {
		db *gorm.DB
	}
)

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) CreateActivityLog(ctx context.Context, activity *entities.ActivityLog) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityLogRepository) GetActivityLogByID(ctx context.Context, id string) (*entities.ActivityLog, error) {
	var activity entities.ActivityLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityLogRepository) GetActivityLogsByUserID(ctx context.Context, userID string) ([]entities.ActivityLog, error) {
	var activities []entities.ActivityLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}

func (r *activityLogRepository) DeleteActivityLog(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ActivityLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
