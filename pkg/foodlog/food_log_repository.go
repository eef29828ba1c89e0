package foodlog

import (
	"context"

	"fittrack/entities"

	"gorm.io/gorm"
)

type (
	FoodLogRepository interface {
		CreateFoodLog(ctx context.Context, log *entities.FoodLog) error
		GetFoodLogByID(ctx context.Context, id string) (*entities.FoodLog, error)
		GetFoodLogsByUserID(ctx context.Context, userID string) ([]entities.FoodLog, error)
		DeleteFoodLog(ctx context.Context, id string) error
	}

	foodLogRepository struct {
		db *gorm.DB
	}
)

func NewFoodLogRepository(db *gorm.DB) FoodLogRepository {
	return &foodLogRepository{db: db}
}

func (r *foodLogRepository) CreateFoodLog(ctx context.Context, log *entities.FoodLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *foodLogRepository) GetFoodLogByID(ctx context.Context, id string) (*entities.FoodLog, error) {
	var log entities.FoodLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// GetFoodLogsByUserID returns the user's logs in insertion order.
func (r *foodLogRepository) GetFoodLogsByUserID(ctx context.Context, userID string) ([]entities.FoodLog, error) {
	var logs []entities.FoodLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *foodLogRepository) DeleteFoodLog(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
