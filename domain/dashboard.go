package domain

var (
	MessageSuccessGetDashboard = "dashboard retrieved successfully"
	MessageFailedGetDashboard  = "failed to retrieve dashboard"
	MessageSuccessExport       = "export generated successfully"
	MessageFailedExport        = "failed to export logs"
)

type (
	// DayBucket is one bar of the weekly intake/burn chart.
	DayBucket struct {
		Date   string `json:"date"`
		Day    string `json:"day"`
		Intake int    `json:"intake"`
		Burn   int    `json:"burn"`
	}

	// Macros are estimated grams from a fixed 25/50/25 calorie split. They are
	// a heuristic, never measured values.
	Macros struct {
		Protein int `json:"protein"`
		Carbs   int `json:"carbs"`
		Fats    int `json:"fats"`
	}

	DailySummary struct {
		Date                   string `json:"date"`
		Consumed               int    `json:"consumed"`
		Burned                 int    `json:"burned"`
		ActiveMinutes          int    `json:"activeMinutes"`
		IntakeGoal             int    `json:"intakeGoal"`
		BurnGoal               int    `json:"burnGoal"`
		Remaining              int    `json:"remaining"`
		ConsumedPct            int    `json:"consumedPct"`
		BurnedPct              int    `json:"burnedPct"`
		ActiveMinutesChangePct int    `json:"activeMinutesChangePct"`
		IntensityScore         int    `json:"intensityScore"`
		Macros                 Macros `json:"macros"`
		FoodCount              int    `json:"foodCount"`
		ActivityCount          int    `json:"activityCount"`
	}

	BMIResult struct {
		Value  float64 `json:"value"`
		Status string  `json:"status"`
	}

	DashboardResponse struct {
		Summary           DailySummary `json:"summary"`
		Week              []DayBucket  `json:"week"`
		StreakDays        int          `json:"streakDays"`
		ActiveDays        int          `json:"activeDays"`
		WeeklyGoalPercent int          `json:"weeklyGoalPercent"`
		BMI               *BMIResult   `json:"bmi,omitempty"`
		TotalFoodLogs     int          `json:"totalFoodLogs"`
		TotalActivityLogs int          `json:"totalActivityLogs"`
	}
)
