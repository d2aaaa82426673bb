package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

func TestLogSink_Insert(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	err := sink.Insert(context.Background(), &domain.AuditEntry{
		EventID:   "e1",
		Action:    domain.AuditEventStatus,
		ActorID:   "3",
		ActorRole: domain.RoleAdmin,
		Detail:    "pending -> approved",
		At:        time.Now(),
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if line["component"] != "audit" || line["action"] != "event_status_changed" || line["actor_role"] != "admin" {
		t.Fatalf("unexpected log line: %v", line)
	}
}
