package dashboard

import (
	"context"
	"time"

	"fittrack/domain"
	"fittrack/pkg/activitylog"
	"fittrack/pkg/foodlog"
	"fittrack/pkg/stats"
	"fittrack/pkg/user"
)

type (
	DashboardService interface {
		GetDashboard(ctx context.Context, userID string, date string) (domain.DashboardResponse, error)
	}

	dashboardService struct {
		userService        user.UserService
		foodLogService     foodlog.FoodLogService
		activityLogService activitylog.ActivityLogService
		now                func() time.Time
	}
)

func NewDashboardService(userService user.UserService, foodLogService foodlog.FoodLogService, activityLogService activitylog.ActivityLogService) DashboardService {
	return &dashboardService{
		userService:        userService,
		foodLogService:     foodLogService,
		activityLogService: activityLogService,
		now:                time.Now,
	}
}

// GetDashboard aggregates every log of the user as of date (YYYY-MM-DD), or
// as of now when date is empty.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string, date string) (domain.DashboardResponse, error) {
	now, err := ReferenceTime(date, s.now())
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	me, err := s.userService.Me(ctx, userID)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	food, err := s.foodLogService.GetFoodLogs(ctx, userID, "")
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	activity, err := s.activityLogService.GetActivityLogs(ctx, userID, "")
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	return stats.BuildDashboard(me, food, activity, now), nil
}

// ReferenceTime resolves an optional YYYY-MM-DD date to noon UTC of that day.
func ReferenceTime(date string, now time.Time) (time.Time, error) {
	if date == "" {
		return now.UTC(), nil
	}
	day, err := time.Parse(stats.DateLayout, date)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return day.Add(12 * time.Hour), nil
}
