package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	CandidateModule   Module = "CANDIDATE"
	LifecycleModule   Module = "LIFECYCLE"
	EvidenceModule    Module = "EVIDENCE"
	ReportModule      Module = "REPORT"
	SelfServiceModule Module = "SELF_SERVICE"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	FlowPermission   Permission = "FLOW"
	FilesPermission  Permission = "FILES"
	NotesPermission  Permission = "NOTES"
	ExportPermission Permission = "EXPORT"
)
