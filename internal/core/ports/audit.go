package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Save(ctx context.Context, entry *domain.AuditEntry) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]domain.AuditEntry, error)
}

// AuditRecorder accepts entries for asynchronous persistence. Recording is
// best-effort and must never block a request.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
