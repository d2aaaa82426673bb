package domain

import "time"

// AuditAction names a state change worth recording.
type AuditAction string

const (
	AuditEventCreated AuditAction = "event_created"
	AuditEventUpdated AuditAction = "event_updated"
	AuditEventDeleted AuditAction = "event_deleted"
	AuditEventStatus  AuditAction = "event_status_changed"
	AuditRegistered   AuditAction = "registered"
)

// AuditEntry is an append-only record of a decision taken on an event.
type AuditEntry struct {
	EventID   string      `json:"event_id" bson:"event_id"`
	Action    AuditAction `json:"action" bson:"action"`
	ActorID   string      `json:"actor_id" bson:"actor_id"`
	ActorRole Role        `json:"actor_role" bson:"actor_role"`
	Detail    string      `json:"detail,omitempty" bson:"detail,omitempty"`
	At        time.Time   `json:"at" bson:"at"`
}
