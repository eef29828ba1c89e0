package foodlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"fittrack/domain"
	"fittrack/entities"
	"fittrack/internal/utils/storage"
	"fittrack/pkg/stats"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodLogService interface {
		CreateFoodLog(ctx context.Context, req domain.FoodLogDraft, userID string) (domain.FoodLog, error)
		GetFoodLogs(ctx context.Context, userID string, date string) ([]domain.FoodLog, error)
		DeleteFoodLog(ctx context.Context, id string, userID string) (domain.FoodLog, error)
	}

	foodLogService struct {
		foodLogRepository FoodLogRepository
		s3                storage.AwsS3
	}
)

// NewFoodLogService builds the service. s3 may be nil when photo archiving
// is disabled.
func NewFoodLogService(foodLogRepository FoodLogRepository, s3 storage.AwsS3) FoodLogService {
	return &foodLogService{
		foodLogRepository: foodLogRepository,
		s3:                s3,
	}
}

func (s *foodLogService) CreateFoodLog(ctx context.Context, req domain.FoodLogDraft, userID string) (domain.FoodLog, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodLog{}, domain.ErrParseUUID
	}

	entry := &entities.FoodLog{
		UserID:   userUUID,
		Name:     strings.TrimSpace(req.Name),
		Calories: req.Calories,
		MealType: req.MealType,
		ImageURL: req.ImageURL,
	}
	if err := s.foodLogRepository.CreateFoodLog(ctx, entry); err != nil {
		return domain.FoodLog{}, err
	}
	return ToFoodLogResponse(entry), nil
}

// GetFoodLogs lists the user's logs oldest first, optionally restricted to
// one UTC calendar day.
func (s *foodLogService) GetFoodLogs(ctx context.Context, userID string, date string) ([]domain.FoodLog, error) {
	if date != "" {
		if _, err := time.Parse(stats.DateLayout, date); err != nil {
			return nil, domain.ErrInvalidDate
		}
	}

	rows, err := s.foodLogRepository.GetFoodLogsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logs := make([]domain.FoodLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, ToFoodLogResponse(&rows[i]))
	}
	if date != "" {
		logs = stats.EntriesOnDate(logs, date)
	}
	return logs, nil
}

func (s *foodLogService) DeleteFoodLog(ctx context.Context, id string, userID string) (domain.FoodLog, error) {
	entry, err := s.foodLogRepository.GetFoodLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodLog{}, domain.ErrFoodLogNotFound
		}
		return domain.FoodLog{}, err
	}

	if entry.UserID.String() != userID {
		return domain.FoodLog{}, domain.ErrUnauthorizedAccess
	}

	if err := s.foodLogRepository.DeleteFoodLog(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodLog{}, domain.ErrFoodLogNotFound
		}
		return domain.FoodLog{}, err
	}

	if s.s3 != nil && entry.ImageURL != "" {
		s.deletePhoto(ctx, entry.ImageURL, userID)
	}

	return ToFoodLogResponse(entry), nil
}

// deletePhoto removes the archived photo behind link. Only objects in the
// owner's photo folder are touched; imageUrl is client supplied.
func (s *foodLogService) deletePhoto(ctx context.Context, link, userID string) {
	key := s.s3.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if !storage.InFolder(key, storage.PhotoFolder(userID)) {
		log.Warnf("skip deleting photo %s: outside the folder of user %s", key, userID)
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warnf("delete food photo %s: %v", key, err)
	}
}

func ToFoodLogResponse(entry *entities.FoodLog) domain.FoodLog {
	return domain.FoodLog{
		ID:        entry.ID.String(),
		Name:      entry.Name,
		Calories:  entry.Calories,
		MealType:  entry.MealType,
		ImageURL:  entry.ImageURL,
		CreatedAt: entry.CreatedAt.UTC(),
	}
}
