package stats

import (
	"fmt"
	"math"

	"fittrack/domain"
)

const (
	BMIUnder      = "Under"
	BMIHealthy    = "Healthy"
	BMIOverweight = "Overweight"
	BMIObese      = "Obese"
)

// BMI returns weight / (height in metres)^2 rounded to one decimal. ok is
// false when either measurement is missing.
func BMI(weightKg, heightCm float64) (value float64, ok bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	m := heightCm / 100
	return round(weightKg/(m*m)*10) / 10, true
}

func ClassifyBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnder
	case bmi < 25:
		return BMIHealthy
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// BMIFor builds the dashboard BMI block, nil when height is unknown.
func BMIFor(u domain.User) *domain.BMIResult {
	v, ok := BMI(u.Weight, u.Height)
	if !ok {
		return nil
	}
	return &domain.BMIResult{Value: v, Status: ClassifyBMI(v)}
}

// MacroEstimates splits calories 25% protein, 50% carbs, 25% fats at 4/4/9
// kcal per gram. This is an estimate, not a measurement.
func MacroEstimates(calories int) domain.Macros {
	c := float64(calories)
	return domain.Macros{
		Protein: int(round(c * 0.25 / 4)),
		Carbs:   int(round(c * 0.5 / 4)),
		Fats:    int(round(c * 0.25 / 9)),
	}
}

// MacroTotals sums per-entry estimates, so rounding happens per entry.
func MacroTotals[E Entry](entries []E) domain.Macros {
	var total domain.Macros
	for _, e := range entries {
		m := MacroEstimates(e.Kcal())
		total.Protein += m.Protein
		total.Carbs += m.Carbs
		total.Fats += m.Fats
	}
	return total
}

// RemainingLabel renders the sign of a Remaining value distinctly.
func RemainingLabel(remaining int) string {
	if remaining >= 0 {
		return fmt.Sprintf("%d kcal remaining", remaining)
	}
	return fmt.Sprintf("%d kcal over", int(math.Abs(float64(remaining))))
}
