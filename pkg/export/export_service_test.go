package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fittrack/domain"
)

func TestWorkbookHasOneSheetPerCollection(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 15, 0, 0, time.UTC)
	food := []domain.FoodLog{{ID: "f1", Name: "Eggs", Calories: 300, MealType: domain.MealBreakfast, CreatedAt: at}}
	activity := []domain.ActivityLog{
		{ID: "a1", Name: "Running", Duration: 30, Calories: 330, CreatedAt: at},
		{ID: "a2", Name: "Yoga", Duration: 20, Calories: 60, CreatedAt: at.Add(time.Hour)},
	}

	buf, err := Workbook(food, activity)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{FoodSheet, ActivitySheet}, f.GetSheetList())

	foodRows, err := f.GetRows(FoodSheet)
	require.NoError(t, err)
	require.Len(t, foodRows, 2)
	assert.Equal(t, []string{"2026-03-10", "08:15", "Eggs", "breakfast", "300"}, foodRows[1])

	activityRows, err := f.GetRows(ActivitySheet)
	require.NoError(t, err)
	require.Len(t, activityRows, 3)
	assert.Equal(t, "Duration (min)", activityRows[0][3])
	assert.Equal(t, "Yoga", activityRows[2][2])
}

func TestWorkbookWithoutEntries(t *testing.T) {
	buf, err := Workbook(nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(FoodSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
