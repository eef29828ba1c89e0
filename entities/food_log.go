package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoodLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name     string    `gorm:"not null" json:"name"`
	Calories int       `gorm:"not null" json:"calories"`
	MealType string    `gorm:"not null" json:"meal_type"` // breakfast, lunch, dinner, snack
	ImageURL string    `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

func (f *FoodLog) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
