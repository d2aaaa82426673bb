// Package audit holds audit sinks that need no external storage.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// LogSink writes audit entries as structured log lines.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "audit").Logger()}
}

func (s *LogSink) Insert(_ context.Context, e *domain.AuditEntry) error {
	s.log.Info().
		Str("event_id", e.EventID).
		Str("action", string(e.Action)).
		Str("actor_id", e.ActorID).
		Str("actor_role", string(e.ActorRole)).
		Str("detail", e.Detail).
		Time("at", e.At).
		Msg("audit")
	return nil
}
