package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name     string    `gorm:"not null" json:"name"`
	Duration int       `gorm:"not null" json:"duration"` // minutes
	Calories int       `gorm:"not null" json:"calories"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

func (a *ActivityLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
