package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

const (
	EntityAppointment = "appointment"
	EntityProduct     = "product"

	defaultLimit = 50
	maxLimit     = 200
)

// Filter recorta o audit log de uma barbearia. Campos zero não filtram.
type Filter struct {
	BarbershopID uint

	Entity   string
	EntityID string
	Actions  []string
	UserID   *uint

	// [From, To)
	From time.Time
	To   time.Time

	Page  int
	Limit int
}

// Entry é a linha do log com metadata já decodificada.
type Entry struct {
	ID         uint            `json:"id"`
	UserID     *uint           `json:"user_id"`
	Action     string          `json:"action"`
	Entity     string          `json:"entity"`
	EntityID   string          `json:"entity_id"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type Page struct {
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Total int64   `json:"total"`
	Logs  []Entry `json:"logs"`
}

func (f Filter) normalized() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > maxLimit {
		f.Limit = defaultLimit
	}
	return f
}

// List devolve a página pedida, mais recente primeiro. O filtro por
// barbearia é obrigatório.
func (l *Logger) List(ctx context.Context, f Filter) (Page, error) {
	if f.BarbershopID == 0 {
		return Page{}, fmt.Errorf("audit list: barbershop is required")
	}
	f = f.normalized()

	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", f.BarbershopID)

	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if len(f.Actions) > 0 {
		q = q.Where("action IN ?", f.Actions)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("count audit logs: %w", err)
	}

	var rows []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&rows).Error; err != nil {
		return Page{}, fmt.Errorf("list audit logs: %w", err)
	}

	out := Page{Page: f.Page, Limit: f.Limit, Total: total, Logs: make([]Entry, 0, len(rows))}
	for _, r := range rows {
		e := Entry{
			ID:         r.ID,
			UserID:     r.UserID,
			Action:     r.Action,
			Entity:     r.Entity,
			EntityID:   r.EntityID,
			OccurredAt: r.CreatedAt,
		}
		if r.Metadata != "" && json.Valid([]byte(r.Metadata)) {
			e.Metadata = json.RawMessage(r.Metadata)
		}
		out.Logs = append(out.Logs, e)
	}
	return out, nil
}
