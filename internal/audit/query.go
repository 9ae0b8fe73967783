package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Query struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time // inclusive day
	Page   int
	Limit  int
}

type Page struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// List returns one page of audit rows, newest first.
func (l *Logger) List(ctx context.Context, id *access.Identity, q Query) (*Page, error) {
	if err := access.Authorize(id, access.OpAuditList); err != nil {
		return nil, err
	}

	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > MaxLimit {
		q.Limit = DefaultLimit
	}

	tx := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", q.To.Add(24*time.Hour))
	}

	out := &Page{Page: q.Page, Limit: q.Limit, Logs: []models.AuditLog{}}

	if err := tx.Count(&out.Total).Error; err != nil {
		return nil, httperr.Store("count audit logs", err)
	}
	if err := tx.
		Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&out.Logs).Error; err != nil {
		return nil, httperr.Store("list audit logs", err)
	}
	return out, nil
}
