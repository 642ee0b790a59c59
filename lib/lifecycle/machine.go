// Package lifecycle implements the candidate status machine: which role may
// move a candidate between statuses, with which audit entries and side
// effects.
package lifecycle

import (
	"slices"
	"smarthire-backend/lib/apperr"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"
	"time"

	"github.com/google/uuid"
)

type Machine struct {
	Now func() time.Time
}

func New(now func() time.Time) Machine {
	return Machine{Now: now}
}

func (m Machine) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Parse returns the transition with the given name.
func Parse(name string) (Transition, error) {
	transition := Transition(name)
	if _, ok := rules[transition]; !ok {
		return "", apperr.Authorization("unknown transition %v", name)
	}
	return transition, nil
}

// Apply performs the transition and returns the new snapshot. The input
// candidate is never modified. Authorization is checked before the payload;
// both checks happen before any change.
func (m Machine) Apply(c dbmodels.Candidate, transition Transition, actor models.Actor, payload candidateapimodels.TransitionData) (dbmodels.Candidate, error) {
	r, ok := rules[transition]
	if !ok {
		return c, apperr.Authorization("unknown transition %v", transition)
	}
	if actor.Role != r.role {
		return c, apperr.Authorization("role %v cannot perform %v", actor.Role, transition)
	}
	if !slices.Contains(r.from, c.Status) {
		return c, apperr.Authorization("%v is not allowed from status %v", transition, c.Status)
	}
	if r.validate != nil {
		if err := r.validate(payload); err != nil {
			return c, apperr.Validation("%v: %v", transition, err)
		}
	}

	result := c.Clone()
	events := r.apply(&result, payload)
	now := m.now()
	at := NextTimestamp(result.StatusHistory, now)
	for idx, e := range events {
		if idx > 0 {
			at = afterTimestamp(at, now)
		}
		result.StatusHistory = append(result.StatusHistory, dbmodels.AuditLog{
			ID:        uuid.NewString(),
			Timestamp: at,
			User:      actor.Name,
			Role:      actor.Role,
			Action:    e.action,
			Kind:      e.kind,
			Details:   e.details,
		})
	}
	if r.to == models.StatusRejected && result.Rejection != nil {
		result.Rejection.Timestamp = at
	}
	result.Status = r.to
	return result, nil
}

// Available lists the transitions the role may perform on the candidate.
func Available(c dbmodels.Candidate, role models.UserRole) []Transition {
	result := []Transition{}
	for _, transition := range transitionOrder {
		r := rules[transition]
		if r.role == role && slices.Contains(r.from, c.Status) {
			result = append(result, transition)
		}
	}
	return result
}

// Target returns the status the transition leads to.
func Target(transition Transition) (models.ApplicationStatus, bool) {
	r, ok := rules[transition]
	return r.to, ok
}
