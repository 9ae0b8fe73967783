package notify

import (
	"context"
	"log/slog"
)

// LogPort records notices instead of sending them. It is used when no SMTP
// credentials are configured.
type LogPort struct {
	log *slog.Logger
}

func NewLogPort(log *slog.Logger) *LogPort {
	return &LogPort{log: log}
}

func (p *LogPort) NotifyAssignment(_ context.Context, n AssignmentNotice) error {
	p.log.Info("assignment notice (mail disabled)",
		"to", n.Address,
		"employee", n.EmployeeName,
		"project", n.ProjectName,
		"role", n.RoleDesc,
	)
	return nil
}
