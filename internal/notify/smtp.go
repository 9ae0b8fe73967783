package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/BruksfildServices01/staffing-scheduler/internal/timezone"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPPort sends assignment notices as HTML e-mail.
type SMTPPort struct {
	cfg SMTPConfig
}

func NewSMTPPort(cfg SMTPConfig) *SMTPPort {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPPort{cfg: cfg}
}

var assignmentBody = template.Must(template.New("assignment").Parse(`<h2>New Project Assignment</h2>
<p>Hi <b>{{.EmployeeName}}</b>,</p>
<p>You have been assigned to a new project.</p>
<h3>Assignment Details:</h3>
<ul>
  <li><b>Project:</b> {{.ProjectName}}</li>
  <li><b>Role:</b> {{.RoleDesc}}</li>
  <li><b>Start Date:</b> {{.StartDate}}</li>
  <li><b>End Date:</b> {{.EndDate}}</li>
</ul>
<p>Please check your dashboard for more details.</p>
<p>Regards,<br/>Team Admin</p>
`))

// RenderAssignment builds the HTML body of a notice.
func RenderAssignment(n AssignmentNotice) (string, error) {
	var buf bytes.Buffer
	err := assignmentBody.Execute(&buf, map[string]string{
		"EmployeeName": n.EmployeeName,
		"ProjectName":  n.ProjectName,
		"RoleDesc":     n.RoleDesc,
		"StartDate":    formatDate(n.StartDate),
		"EndDate":      formatDate(n.EndDate),
	})
	return buf.String(), err
}

func (p *SMTPPort) NotifyAssignment(ctx context.Context, n AssignmentNotice) error {
	body, err := RenderAssignment(n)
	if err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(p.cfg.From); err != nil {
		return fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(n.Address); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject("New Assignment: " + n.ProjectName)
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := mail.NewClient(p.cfg.Host,
		mail.WithPort(p.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(p.cfg.Username),
		mail.WithPassword(p.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}

// unsetDate is shown for a missing start or end date.
const unsetDate = "Not Specified"

func formatDate(d *time.Time) string {
	if d == nil {
		return unsetDate
	}
	return d.Format(timezone.DateLayout)
}
