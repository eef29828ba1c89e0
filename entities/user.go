package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username           string    `gorm:"uniqueIndex;not null" json:"username"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"not null" json:"-"`
	Role               string    `gorm:"default:user" json:"role"`
	Age                int       `json:"age"`
	Weight             float64   `json:"weight"`
	Height             float64   `json:"height"`
	Goal               string    `json:"goal"`
	DailyCalorieIntake int       `json:"daily_calorie_intake"`
	DailyCalorieBurn   int       `json:"daily_calorie_burn"`

	FoodLogs     []*FoodLog     `gorm:"foreignKey:UserID"`
	ActivityLogs []*ActivityLog `gorm:"foreignKey:UserID"`
	Timestamp
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
