package models

// AuditEventKind classifies audit log entries. Stage resolution matches on
// the kind, never on the human-readable text.
type AuditEventKind string

const (
	AuditCreated             AuditEventKind = "created"
	AuditInterviewScheduled  AuditEventKind = "interview_scheduled"
	AuditInterviewCompleted  AuditEventKind = "interview_completed"
	AuditSelected            AuditEventKind = "selected"
	AuditRejected            AuditEventKind = "rejected"
	AuditSurveillanceCleared AuditEventKind = "surveillance_cleared"
	AuditSurveillanceFlagged AuditEventKind = "surveillance_flagged"
	AuditOfferAccepted       AuditEventKind = "offer_accepted"
	AuditJoiningScheduled    AuditEventKind = "joining_scheduled"
	AuditJoined              AuditEventKind = "joined"
	AuditFieldChanged        AuditEventKind = "field_changed"
	AuditTestCompleted       AuditEventKind = "test_completed"
)

// IsStateChange reports whether entries of this kind accompany a status change.
func (k AuditEventKind) IsStateChange() bool {
	switch k {
	case AuditFieldChanged, AuditTestCompleted:
		return false
	}
	return true
}
