package models

import "time"

// Booking is a client's request for staffing. ClientID always points at a
// user with role client.
type Booking struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index;not null" json:"client_id"`

	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Location       string     `gorm:"size:255" json:"location"`
	RequiredSkills string     `gorm:"size:255" json:"required_skills"`
	StartDate      *time.Time `gorm:"type:date" json:"start_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date"`
	Budget         *float64   `gorm:"type:decimal(10,2)" json:"budget"`

	Status string `gorm:"size:50;index;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
