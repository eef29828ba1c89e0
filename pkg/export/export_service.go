package export

import (
	"bytes"
	"context"
	"fmt"

	"fittrack/domain"
	"fittrack/pkg/activitylog"
	"fittrack/pkg/foodlog"
	"fittrack/pkg/stats"

	"github.com/xuri/excelize/v2"
)

const (
	FoodSheet     = "Food Logs"
	ActivitySheet = "Activity Logs"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type (
	ExportService interface {
		ExportLogs(ctx context.Context, userID string) (*bytes.Buffer, error)
	}

	exportService struct {
		foodLogService     foodlog.FoodLogService
		activityLogService activitylog.ActivityLogService
	}
)

func NewExportService(foodLogService foodlog.FoodLogService, activityLogService activitylog.ActivityLogService) ExportService {
	return &exportService{
		foodLogService:     foodLogService,
		activityLogService: activityLogService,
	}
}

// ExportLogs renders every food and activity log of the user into an xlsx
// workbook with one sheet per collection.
func (s *exportService) ExportLogs(ctx context.Context, userID string) (*bytes.Buffer, error) {
	food, err := s.foodLogService.GetFoodLogs(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	activity, err := s.activityLogService.GetActivityLogs(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return Workbook(food, activity)
}

func Workbook(food []domain.FoodLog, activity []domain.ActivityLog) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", FoodSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ActivitySheet); err != nil {
		return nil, err
	}

	foodRows := [][]any{{"Date", "Time", "Name", "Meal", "Calories", "Photo"}}
	for _, entry := range food {
		at := entry.CreatedAt.UTC()
		foodRows = append(foodRows, []any{
			stats.DayKey(at), at.Format("15:04"), entry.Name, entry.MealType, entry.Calories, entry.ImageURL,
		})
	}
	if err := writeRows(f, FoodSheet, foodRows); err != nil {
		return nil, err
	}

	activityRows := [][]any{{"Date", "Time", "Activity", "Duration (min)", "Calories"}}
	for _, entry := range activity {
		at := entry.CreatedAt.UTC()
		activityRows = append(activityRows, []any{
			stats.DayKey(at), at.Format("15:04"), entry.Name, entry.Duration, entry.Calories,
		})
	}
	if err := writeRows(f, ActivitySheet, activityRows); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	header, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, header)
}
