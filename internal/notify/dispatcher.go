package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const sendTimeout = 30 * time.Second

type Dispatcher struct {
	port  Port
	log   *slog.Logger
	queue chan AssignmentNotice

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(port Port, log *slog.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		port:  port,
		log:   log,
		queue: make(chan AssignmentNotice, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n AssignmentNotice) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.port.NotifyAssignment(ctx, n); err != nil {
		d.log.Error("assignment notification failed",
			"to", n.Address,
			"project", n.ProjectName,
			"error", err,
		)
		return
	}
	d.log.Info("assignment notification sent", "to", n.Address, "project", n.ProjectName)
}

// Dispatch never blocks; a full queue drops the notice.
func (d *Dispatcher) Dispatch(n AssignmentNotice) {
	select {
	case d.queue <- n:
	default:
		d.log.Warn("notification queue full, dropping notice", "to", n.Address)
	}
}

// Close stops accepting notices and waits for queued ones to be attempted.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.queue) })
	<-d.done
}
