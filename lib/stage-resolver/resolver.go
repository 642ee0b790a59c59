// Package stageresolver projects a candidate status and history onto the
// fixed hiring pipeline shown to operators.
package stageresolver

import (
	"slices"
	applicanthistory "smarthire-backend/lib/applicant-history"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"
	"strings"
)

const (
	StageApplied = iota
	StageHRScreening
	StageInterviewScheduled
	StageHODInterview
	StageSurveillanceCheck
	StageHROffer
	StageJoiningScheduled
	StageHired
)

type stage struct {
	name   string
	owners []models.UserRole
}

var stages = []stage{
	{name: "Applied", owners: []models.UserRole{models.HRRole}},
	{name: "HR Screening", owners: []models.UserRole{models.HRRole}},
	{name: "Interview Scheduled", owners: []models.UserRole{models.SchedulerRole}},
	{name: "HOD Interview", owners: []models.UserRole{models.HODRole}},
	{name: "Surveillance Check", owners: []models.UserRole{models.SurveillanceRole}},
	{name: "HR Offer", owners: []models.UserRole{models.HRRole, models.AdminRole}},
	{name: "Joining Scheduled", owners: []models.UserRole{models.SchedulerRole, models.AdminRole}},
	{name: "Hired", owners: []models.UserRole{models.HRRole, models.AdminRole}},
}

var statusStage = map[models.ApplicationStatus]int{
	models.StatusInterviewScheduled:  StageInterviewScheduled,
	models.StatusInterviewCompleted:  StageHODInterview,
	models.StatusPendingSurveillance: StageSurveillanceCheck,
	models.StatusSurveillanceCleared: StageHROffer,
	models.StatusOfferAccepted:       StageHROffer,
	models.StatusJoiningScheduled:    StageJoiningScheduled,
	models.StatusJoined:              StageHired,
	models.StatusSurveillanceFlagged: StageSurveillanceCheck,
}

// StageName returns the pipeline stage name for an index.
func StageName(index int) string {
	if index < 0 || index >= len(stages) {
		return ""
	}
	return stages[index].name
}

func StageCount() int {
	return len(stages)
}

// Index returns the current pipeline stage of the candidate.
func Index(c dbmodels.Candidate) int {
	switch c.Status {
	case models.StatusNew:
		if hasHRScreening(c.StatusHistory) {
			return StageHRScreening
		}
		return StageApplied
	case models.StatusRejected:
		return rejectionStage(c)
	}
	if index, ok := statusStage[c.Status]; ok {
		return index
	}
	return StageApplied
}

// Resolve returns the state of every stage and, for the stages up to the
// current one, the most recent matching history entry.
func Resolve(c dbmodels.Candidate) candidateapimodels.StageProgress {
	current := Index(c)
	failed := c.Status == models.StatusRejected || c.Status == models.StatusSurveillanceFlagged
	result := candidateapimodels.StageProgress{
		CurrentIndex: current,
		Stages:       make([]candidateapimodels.StageView, 0, len(stages)),
	}
	for index, s := range stages {
		view := candidateapimodels.StageView{
			Index:  index,
			Name:   s.name,
			State:  stateOf(index, current, failed, c.Status == models.StatusJoined),
			Owners: s.owners,
		}
		if index <= current {
			if entry, ok := findEntry(index, c); ok {
				view.Entry = &entry
			}
		}
		result.Stages = append(result.Stages, view)
	}
	return result
}

// IsTaskOf reports whether the active stage belongs to role.
func IsTaskOf(progress candidateapimodels.StageProgress, role models.UserRole) bool {
	for _, view := range progress.Stages {
		if view.State == candidateapimodels.StageActive && slices.Contains(view.Owners, role) {
			return true
		}
	}
	return false
}

func stateOf(index, current int, failed, joined bool) candidateapimodels.StageState {
	switch {
	case failed && index == current:
		return candidateapimodels.StageFailed
	case joined || index < current:
		return candidateapimodels.StageCompleted
	case index == current:
		return candidateapimodels.StageActive
	}
	return candidateapimodels.StagePending
}

func rejectionStage(c dbmodels.Candidate) int {
	role := models.UserRole("")
	if entry, ok := lastMatch(c.StatusHistory, func(rec dbmodels.AuditLog) bool { return rec.Kind == models.AuditRejected }); ok {
		role = entry.Role
	} else if c.Rejection != nil {
		role = c.Rejection.Actor
	}
	if role == models.SurveillanceRole {
		return StageSurveillanceCheck
	}
	return StageHODInterview
}

func hasHRScreening(history []dbmodels.AuditLog) bool {
	_, ok := lastMatch(history, isHRScreening)
	return ok
}

func isHRScreening(rec dbmodels.AuditLog) bool {
	return rec.Kind == models.AuditFieldChanged && rec.Role == models.HRRole && strings.HasPrefix(rec.Field, applicanthistory.HRRatingPrefix)
}

func findEntry(index int, c dbmodels.Candidate) (dbmodels.AuditLog, bool) {
	history := c.StatusHistory
	switch index {
	case StageApplied:
		return lastKind(history, models.AuditCreated)
	case StageHRScreening:
		return lastMatch(history, isHRScreening)
	case StageInterviewScheduled:
		return lastKind(history, models.AuditInterviewScheduled)
	case StageHODInterview:
		if c.Status == models.StatusRejected && rejectionStage(c) == StageHODInterview {
			if entry, ok := lastRejectionBy(history, models.HODRole); ok {
				return entry, true
			}
		}
		return lastKind(history, models.AuditInterviewCompleted)
	case StageSurveillanceCheck:
		switch c.Status {
		case models.StatusSurveillanceFlagged:
			return lastKind(history, models.AuditSurveillanceFlagged)
		case models.StatusRejected:
			return lastRejectionBy(history, models.SurveillanceRole)
		}
		return lastKind(history, models.AuditSurveillanceCleared, models.AuditSurveillanceFlagged)
	case StageHROffer:
		return lastKind(history, models.AuditOfferAccepted)
	case StageJoiningScheduled:
		return lastKind(history, models.AuditJoiningScheduled)
	case StageHired:
		return lastKind(history, models.AuditJoined)
	}
	return dbmodels.AuditLog{}, false
}

func lastKind(history []dbmodels.AuditLog, kinds ...models.AuditEventKind) (dbmodels.AuditLog, bool) {
	return lastMatch(history, func(rec dbmodels.AuditLog) bool { return slices.Contains(kinds, rec.Kind) })
}

func lastRejectionBy(history []dbmodels.AuditLog, role models.UserRole) (dbmodels.AuditLog, bool) {
	return lastMatch(history, func(rec dbmodels.AuditLog) bool { return rec.Kind == models.AuditRejected && rec.Role == role })
}

func lastMatch(history []dbmodels.AuditLog, match func(rec dbmodels.AuditLog) bool) (dbmodels.AuditLog, bool) {
	for idx := len(history) - 1; idx >= 0; idx-- {
		if match(history[idx]) {
			return history[idx], true
		}
	}
	return dbmodels.AuditLog{}, false
}
