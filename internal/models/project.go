package models

import "time"

type Project struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"uniqueIndex;not null" json:"booking_id"`
	ManagerID uint `gorm:"index" json:"manager_id"`

	Name      string     `gorm:"column:project_name;size:255;not null" json:"project_name"`
	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	Notes     string     `gorm:"type:text" json:"notes"`

	Status string `gorm:"size:50;index;default:'planned'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
