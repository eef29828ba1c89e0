package activitylog

import (
	"context"
	"errors"
	"strings"
	"time"

	"fittrack/domain"
	"fittrack/entities"
	"fittrack/pkg/stats"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ActivityLogService interface {
		CreateActivityLog(ctx context.Context, req domain.ActivityLogDraft, userID string) (domain.ActivityLog, error)
		GetActivityLogs(ctx context.Context, userID string, date string) ([]domain.ActivityLog, error)
		DeleteActivityLog(ctx context.Context, id string, userID string) (domain.ActivityLog, error)
	}

	activityLogService struct {
		activityLogRepository ActivityLogRepository
	}
)

func NewActivityLogService(activityLogRepository ActivityLogRepository) ActivityLogService {
	return &activityLogService{activityLogRepository: activityLogRepository}
}

func (s *activityLogService) CreateActivityLog(ctx context.Context, req domain.ActivityLogDraft, userID string) (domain.ActivityLog, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ActivityLog{}, domain.ErrParseUUID
	}

	activity := &entities.ActivityLog{
		UserID:   userUUID,
		Name:     strings.TrimSpace(req.Name),
		Duration: req.Duration,
		Calories: req.Calories,
	}
	if err := s.activityLogRepository.CreateActivityLog(ctx, activity); err != nil {
		return domain.ActivityLog{}, err
	}
	return ToActivityLogResponse(activity), nil
}

func (s *activityLogService) GetActivityLogs(ctx context.Context, userID string, date string) ([]domain.ActivityLog, error) {
	if date != "" {
		if _, err := time.Parse(stats.DateLayout, date); err != nil {
			return nil, domain.ErrInvalidDate
		}
	}

	rows, err := s.activityLogRepository.GetActivityLogsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	activities := make([]domain.ActivityLog, 0, len(rows))
	for i := range rows {
		activities = append(activities, ToActivityLogResponse(&rows[i]))
	}
	if date != "" {
		activities = stats.EntriesOnDate(activities, date)
	}
	return activities, nil
}

func (s *activityLogService) DeleteActivityLog(ctx context.Context, id string, userID string) (domain.ActivityLog, error) {
	activity, err := s.activityLogRepository.GetActivityLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ActivityLog{}, domain.ErrActivityLogNotFound
		}
		return domain.ActivityLog{}, err
	}

	if activity.UserID.String() != userID {
		return domain.ActivityLog{}, domain.ErrUnauthorizedAccess
	}

	if err := s.activityLogRepository.DeleteActivityLog(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ActivityLog{}, domain.ErrActivityLogNotFound
		}
		return domain.ActivityLog{}, err
	}
	return ToActivityLogResponse(activity), nil
}

func ToActivityLogResponse(activity *entities.ActivityLog) domain.ActivityLog {
	return domain.ActivityLog{
		ID:        activity.ID.String(),
		Name:      activity.Name,
		Duration:  activity.Duration,
		Calories:  activity.Calories,
		CreatedAt: activity.CreatedAt.UTC(),
	}
}
