// Package notify delivers best-effort messages about new assignments. The
// assignment is already committed when a notice is dispatched, so delivery
// failures are only logged.
package notify

import (
	"context"
	"time"
)

type AssignmentNotice struct {
	Address      string
	ProjectName  string
	EmployeeName string
	RoleDesc     string
	StartDate    *time.Time
	EndDate      *time.Time
}

// Port is the outbound delivery channel.
type Port interface {
	NotifyAssignment(ctx context.Context, n AssignmentNotice) error
}

// Notifier queues notices without waiting for delivery.
type Notifier interface {
	Dispatch(n AssignmentNotice)
}
