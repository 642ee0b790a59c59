package candidateapimodels

import (
	"smarthire-backend/models"
	apimodels "smarthire-backend/models/api"
	dbmodels "smarthire-backend/models/db"
)

type StageState string

const (
	StageCompleted StageState = "completed"
	StageActive    StageState = "active"
	StagePending   StageState = "pending"
	StageFailed    StageState = "failed"
)

type StageView struct {
	Index  int                `json:"index"`
	Name   string             `json:"name"`
	State  StageState         `json:"state"`
	Owners []models.UserRole  `json:"owners"`
	Entry  *dbmodels.AuditLog `json:"entry,omitempty"` // most recent history entry of the stage
}

type StageProgress struct {
	CurrentIndex int         `json:"currentIndex"`
	Stages       []StageView `json:"stages"`
	YourTask     bool        `json:"yourTask"` // the active stage is owned by the caller's role
}

type HistoryFilter struct {
	apimodels.Pagination
	Kind models.AuditEventKind `json:"kind"` // only entries of this kind
}

type HistoryView struct {
	dbmodels.AuditLog
	RoleName string `json:"roleName"` // human readable role of the author
}
