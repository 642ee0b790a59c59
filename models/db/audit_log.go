package dbmodels

import (
	"smarthire-backend/models"
	"time"
)

// AuditLog is an immutable entry of the candidate history.
type AuditLog struct {
	ID        string                `json:"id"`
	Timestamp time.Time             `json:"timestamp"`
	User      string                `json:"user"`
	Role      models.UserRole       `json:"role"`
	Action    string                `json:"action"`
	Kind      models.AuditEventKind `json:"kind"`
	Field     string                `json:"field,omitempty"`   // whitelisted path for field edits
	Details   string                `json:"details,omitempty"` // free-form context such as a reason
}
