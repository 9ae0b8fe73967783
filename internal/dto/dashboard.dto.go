package dto

type DashboardDTO struct {
	Users     int64 `json:"users"`
	Employees int64 `json:"employees"`
	Managers  int64 `json:"managers"`
	Clients   int64 `json:"clients"`

	Bookings         int64 `json:"bookings"`
	BookingsPending  int64 `json:"bookings_pending"`
	BookingsApproved int64 `json:"bookings_approved"`

	Projects          int64 `json:"projects"`
	ProjectsActive    int64 `json:"projects_active"`
	ProjectsCompleted int64 `json:"projects_completed"`

	Assignments          int64 `json:"assignments"`
	AssignmentsWorking   int64 `json:"assignments_working"`
	AssignmentsCompleted int64 `json:"assignments_completed"`
}
