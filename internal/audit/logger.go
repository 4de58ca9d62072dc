package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

type Store interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Logger writes audit rows synchronously.
type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		BotID:    ev.BotID,
		TenantID: ev.TenantID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.store.Create(ctx, &entry)
}
