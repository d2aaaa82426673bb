package ports

import (
	"context"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// AuditRecorder accepts audit entries without blocking the caller.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditSink persists audit entries.
type AuditSink interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
