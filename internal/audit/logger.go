package audit

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/personal-color/internal/models"
)

// Repository persists audit entries.
type Repository interface {
	Save(ctx context.Context, entry *models.AuditLog) error
}

type Logger struct {
	repo Repository
}

func New(repo Repository) *Logger {
	return &Logger{repo: repo}
}

// Log writes ev synchronously. Metadata that cannot be encoded is dropped
// rather than failing the entry.
func (l *Logger) Log(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = datatypes.JSON(b)
		}
	}

	entry := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}

	return l.repo.Save(ctx, &entry)
}
