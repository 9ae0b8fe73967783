package dto

import "time"

// AssignmentDetailDTO is an assignment joined with the names staff need to
// read it.
type AssignmentDetailDTO struct {
	ID              uint       `json:"id"`
	ProjectID       uint       `json:"project_id"`
	EmployeeID      uint       `json:"employee_id"`
	AssignedBy      uint       `json:"assigned_by"`
	RoleDesc        string     `json:"role_desc"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	EmployeeName    *string    `json:"employee_name"`
	ProjectName     *string    `json:"project_name"`
	BookingTitle    *string    `json:"booking_title"`
	BookingLocation *string    `json:"booking_location"`
}

// EmployeeTaskDTO is one row of an employee's task list.
type EmployeeTaskDTO struct {
	ID              uint       `json:"id"`
	ProjectID       uint       `json:"project_id"`
	RoleDesc        string     `json:"role_desc"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ProjectName     string     `json:"project_name"`
	BookingTitle    string     `json:"booking_title"`
	BookingLocation string     `json:"booking_location"`
	BookingStart    *time.Time `json:"booking_start"`
	BookingEnd      *time.Time `json:"booking_end"`
}
