package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// Writer persists one audit row.
type Writer interface {
	Write(ctx context.Context, entry *models.AuditLog) error
}

// Logger stores audit rows in the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, entry *models.AuditLog) error {
	return l.db.WithContext(ctx).Create(entry).Error
}

// SlogWriter emits audit rows as log records; used when there is no database.
type SlogWriter struct {
	logger *slog.Logger
}

func NewSlogWriter(logger *slog.Logger) *SlogWriter {
	return &SlogWriter{logger: logger}
}

func (w *SlogWriter) Write(ctx context.Context, entry *models.AuditLog) error {
	attrs := []any{
		"business_id", entry.BusinessID,
		"action", entry.Action,
		"entity", entry.Entity,
	}
	if entry.EntityID != nil {
		attrs = append(attrs, "entity_id", *entry.EntityID)
	}
	if entry.Metadata != "" {
		attrs = append(attrs, "metadata", entry.Metadata)
	}
	w.logger.InfoContext(ctx, "audit", attrs...)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
