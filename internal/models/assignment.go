package models

import "time"

type Assignment struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProjectID  uint `gorm:"index;not null" json:"project_id"`
	EmployeeID uint `gorm:"index;not null" json:"employee_id"`
	AssignedBy uint `json:"assigned_by"`

	RoleDesc  string     `gorm:"size:255" json:"role_desc"`
	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	Status string `gorm:"size:20;index;default:'assigned'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
