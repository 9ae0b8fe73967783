package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingPort struct {
	mu      sync.Mutex
	notices []AssignmentNotice
	err     error
}

func (p *recordingPort) NotifyAssignment(_ context.Context, n AssignmentNotice) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, n)
	return p.err
}

func TestDispatcherDeliversQueuedNotices(t *testing.T) {
	port := &recordingPort{}
	d := NewDispatcher(port, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), 4)

	d.Dispatch(AssignmentNotice{Address: "a@example.com", ProjectName: "Audit"})
	d.Dispatch(AssignmentNotice{Address: "b@example.com", ProjectName: "Audit"})
	d.Close()

	if len(port.notices) != 2 || port.notices[1].Address != "b@example.com" {
		t.Fatalf("unexpected notices: %+v", port.notices)
	}
}

func TestDispatcherLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	port := &recordingPort{err: errors.New("smtp down")}
	d := NewDispatcher(port, slog.New(slog.NewTextHandler(&buf, nil)), 1)

	d.Dispatch(AssignmentNotice{Address: "a@example.com", ProjectName: "Audit"})
	d.Close()

	if !strings.Contains(buf.String(), "assignment notification failed") || !strings.Contains(buf.String(), "smtp down") {
		t.Fatalf("failure not logged: %s", buf.String())
	}
}

type blockingPort struct {
	release chan struct{}
}

func (p *blockingPort) NotifyAssignment(context.Context, AssignmentNotice) error {
	<-p.release
	return nil
}

func TestDispatchDropsWhenQueueFull(t *testing.T) {
	var buf bytes.Buffer
	port := &blockingPort{release: make(chan struct{})}
	d := NewDispatcher(port, slog.New(slog.NewTextHandler(&buf, nil)), 1)

	done := make(chan struct{})
	go func() {
		// first notice is taken by the worker, second fills the queue,
		// the rest must be dropped without blocking
		for i := 0; i < 5; i++ {
			d.Dispatch(AssignmentNotice{Address: "x@example.com"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	close(port.release)
	d.Close()

	if !strings.Contains(buf.String(), "notification queue full") {
		t.Fatalf("expected drop to be logged: %s", buf.String())
	}
}

func TestRenderAssignmentEscapesAndDefaults(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	body, err := RenderAssignment(AssignmentNotice{
		EmployeeName: "<script>Eve</script>",
		ProjectName:  "Audit Project",
		RoleDesc:     "Not Specified",
		StartDate:    &start,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatal("employee name was not escaped")
	}
	if !strings.Contains(body, "2025-01-06") || !strings.Contains(body, "<b>End Date:</b> Not Specified") {
		t.Fatalf("dates not rendered: %s", body)
	}
}
