package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is one entry of a user's activity trail.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   *uint          `gorm:"index:idx_audit_logs_user_created,priority:1" json:"user_id"`
	Action   string         `gorm:"size:50;not null;index" json:"action"`
	Entity   string         `gorm:"size:50" json:"entity"`
	EntityID *uint          `json:"entity_id"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_audit_logs_user_created,priority:2" json:"created_at"`
}
