package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint   `gorm:"index" json:"barbershop_id"`
	UserID       *uint  `json:"user_id"`
	Action       string `gorm:"size:50;not null" json:"action"`

	// histórico de um agendamento: (entity, entity_id)
	Entity   string `gorm:"size:50;index:idx_audit_logs_entity,priority:1" json:"entity"`
	EntityID string `gorm:"size:64;index:idx_audit_logs_entity,priority:2" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
