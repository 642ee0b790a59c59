// Package applicant is the candidate lifecycle service: it loads snapshots
// from the store, runs the status machine and field edits on them and writes
// the results back.
package applicant

import (
	"context"
	"fmt"
	"slices"
	"smarthire-backend/lib/apperr"
	applicanthistory "smarthire-backend/lib/applicant-history"
	candidatestore "smarthire-backend/lib/applicant/store"
	"smarthire-backend/lib/lifecycle"
	"smarthire-backend/lib/rating"
	stageresolver "smarthire-backend/lib/stage-resolver"
	"smarthire-backend/lib/utils/lock"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const lockWait = 5 * time.Second

// Notifier is told about every successful transition.
type Notifier interface {
	CandidateTransitioned(ctx context.Context, rec dbmodels.Candidate, transition lifecycle.Transition)
}

type Provider interface {
	Create(ctx context.Context, actor models.Actor, data candidateapimodels.CandidateData) (dbmodels.Candidate, error)
	GetByID(ctx context.Context, id string) (dbmodels.Candidate, error)
	List(ctx context.Context, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error)
	ApplyTransition(ctx context.Context, id, transition string, actor models.Actor, payload candidateapimodels.TransitionData) (dbmodels.Candidate, error)
	ApplyFieldEdits(ctx context.Context, id string, actor models.Actor, edited dbmodels.Candidate) (dbmodels.Candidate, error)
	AddComment(ctx context.Context, id string, actor models.Actor, data candidateapimodels.CommentData) (dbmodels.Candidate, error)
	RecordTestResult(ctx context.Context, id string, actor models.Actor, data candidateapimodels.TestResultData) (dbmodels.Candidate, error)
	ResolveStage(rec dbmodels.Candidate) candidateapimodels.StageProgress
	AvailableTransitions(rec dbmodels.Candidate, role models.UserRole) []lifecycle.Transition
	Subscribe(onChange func(id string)) (unsubscribe func(), err error)
}

var Instance Provider

func NewHandler(store candidatestore.Provider, notifier Notifier) {
	Instance = NewInstance(store, time.Now, notifier)
}

func NewInstance(store candidatestore.Provider, now func() time.Time, notifier Notifier) Provider {
	return impl{
		store:    store,
		machine:  lifecycle.New(now),
		now:      now,
		notifier: notifier,
	}
}

type impl struct {
	store    candidatestore.Provider
	machine  lifecycle.Machine
	now      func() time.Time
	notifier Notifier
}

var creatorRoles = []models.UserRole{models.HRRole, models.AdminRole, models.CandidateRole}

func (i impl) Create(ctx context.Context, actor models.Actor, data candidateapimodels.CandidateData) (dbmodels.Candidate, error) {
	if !slices.Contains(creatorRoles, actor.Role) {
		return dbmodels.Candidate{}, apperr.Authorization("role %v cannot create candidates", actor.Role)
	}
	rec, err := NewCandidate(data, actor, i.now())
	if err != nil {
		return dbmodels.Candidate{}, err
	}
	id, err := i.store.Create(ctx, rec)
	if err != nil {
		log.WithError(err).WithField("vacancy", rec.Vacancy).Error("error creating candidate")
		return dbmodels.Candidate{}, apperr.Persistence(err, "error creating candidate")
	}
	rec.ID = id
	rec.Version = 1
	log.WithField("candidate_id", id).WithField("role", actor.Role).Info("candidate created")
	return rec, nil
}

func (i impl) GetByID(ctx context.Context, id string) (dbmodels.Candidate, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).WithField("candidate_id", id).Error("error getting candidate")
		return dbmodels.Candidate{}, apperr.Persistence(err, "error getting candidate")
	}
	if rec == nil {
		return dbmodels.Candidate{}, apperr.NotFound("candidate %v not found", id)
	}
	return *rec, nil
}

func (i impl) List(ctx context.Context, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, apperr.Validation("%v", err)
	}
	page, limit := filter.GetPage()
	list, rowCount, err := i.store.List(ctx, candidatestore.Filter{
		Status:     filter.Status,
		Department: filter.Department,
		Search:     strings.TrimSpace(filter.Search),
		Offset:     (page - 1) * limit,
		Limit:      limit,
	})
	if err != nil {
		log.WithError(err).Error("error listing candidates")
		return nil, 0, apperr.Persistence(err, "error listing candidates")
	}
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		index := stageresolver.Index(rec)
		result = append(result, candidateapimodels.CandidateView{
			Candidate:  rec,
			StageIndex: index,
			StageName:  stageresolver.StageName(index),
		})
	}
	return result, rowCount, nil
}

func (i impl) ApplyTransition(ctx context.Context, id, name string, actor models.Actor, payload candidateapimodels.TransitionData) (dbmodels.Candidate, error) {
	transition, err := lifecycle.Parse(name)
	if err != nil {
		return dbmodels.Candidate{}, err
	}
	logger := log.WithField("candidate_id", id).
		WithField("transition", transition).
		WithField("role", actor.Role)
	result, err := i.update(ctx, id, func(rec dbmodels.Candidate) (dbmodels.Candidate, bool, error) {
		updated, err := i.machine.Apply(rec, transition, actor, payload)
		return updated, true, err
	})
	if err != nil {
		logger.WithError(err).Warn("transition failed")
		return dbmodels.Candidate{}, err
	}
	logger.WithField("status", result.Status).Info("transition applied")
	if i.notifier != nil {
		i.notifier.CandidateTransitioned(ctx, result, transition)
	}
	return result, nil
}

func (i impl) ApplyFieldEdits(ctx context.Context, id string, actor models.Actor, edited dbmodels.Candidate) (dbmodels.Candidate, error) {
	fields, ok := applicanthistory.FieldsFor(actor.Role)
	if !ok {
		return dbmodels.Candidate{}, apperr.Authorization("role %v cannot edit candidates", actor.Role)
	}
	return i.update(ctx, id, func(rec dbmodels.Candidate) (dbmodels.Candidate, bool, error) {
		if edited.Version != 0 && edited.Version != rec.Version {
			return rec, false, apperr.Conflict("candidate %v was changed by someone else, reload it", id)
		}
		merged := applicanthistory.Merge(rec, edited, fields)
		at := lifecycle.NextTimestamp(rec.StatusHistory, i.now())
		entries := applicanthistory.Diff(rec, merged, actor, fields, at)
		if len(entries) == 0 {
			return rec, false, nil
		}
		if err := candidateapimodels.ValidateCandidate(merged); err != nil {
			return rec, false, apperr.Validation("%v", err)
		}
		merged = rating.Apply(actor.Role, rec, merged)
		merged.StatusHistory = append(merged.StatusHistory, entries...)
		return merged, true, nil
	})
}

func (i impl) AddComment(ctx context.Context, id string, actor models.Actor, data candidateapimodels.CommentData) (dbmodels.Candidate, error) {
	if err := data.Validate(); err != nil {
		return dbmodels.Candidate{}, apperr.Validation("%v", err)
	}
	return i.update(ctx, id, func(rec dbmodels.Candidate) (dbmodels.Candidate, bool, error) {
		rec = rec.Clone()
		rec.Comments = append(rec.Comments, dbmodels.Comment{
			ID:        uuid.NewString(),
			Timestamp: i.now().UTC().Truncate(time.Millisecond),
			User:      actor.Name,
			UserID:    actor.ID,
			Role:      actor.Role,
			Comment:   strings.TrimSpace(data.Comment),
		})
		return rec, true, nil
	})
}

func (i impl) RecordTestResult(ctx context.Context, id string, actor models.Actor, data candidateapimodels.TestResultData) (dbmodels.Candidate, error) {
	if actor.Role != models.CandidateRole || actor.ID != id {
		return dbmodels.Candidate{}, apperr.Authorization("only the candidate can submit the test")
	}
	if data.Score < 0 || data.Score > rating.TestQuestionCount {
		return dbmodels.Candidate{}, apperr.Validation("test score must be between 0 and %v", rating.TestQuestionCount)
	}
	return i.update(ctx, id, func(rec dbmodels.Candidate) (dbmodels.Candidate, bool, error) {
		if rec.PreEmploymentTest != nil {
			return rec, false, apperr.Validation("test is already completed")
		}
		rec = rec.Clone()
		at := lifecycle.NextTimestamp(rec.StatusHistory, i.now())
		rec.PreEmploymentTest = &dbmodels.PreEmploymentTest{
			Score:       data.Score,
			Total:       rating.TestQuestionCount,
			Rating:      rating.TestBand(data.Score),
			Answers:     data.Answers,
			CompletedAt: at,
		}
		rec.StatusHistory = append(rec.StatusHistory, dbmodels.AuditLog{
			ID:        uuid.NewString(),
			Timestamp: at,
			User:      rec.FullName,
			Role:      models.CandidateRole,
			Action:    fmt.Sprintf("Pre-Employment Test Completed (Score: %d)", data.Score),
			Kind:      models.AuditTestCompleted,
		})
		return rec, true, nil
	})
}

func (i impl) ResolveStage(rec dbmodels.Candidate) candidateapimodels.StageProgress {
	return stageresolver.Resolve(rec)
}

func (i impl) AvailableTransitions(rec dbmodels.Candidate, role models.UserRole) []lifecycle.Transition {
	return lifecycle.Available(rec, role)
}

func (i impl) Subscribe(onChange func(id string)) (func(), error) {
	return i.store.Subscribe(onChange)
}

// update runs a read-modify-write of one candidate under the candidate lock.
// change returns the new snapshot and whether it must be written.
func (i impl) update(ctx context.Context, id string, change func(rec dbmodels.Candidate) (dbmodels.Candidate, bool, error)) (dbmodels.Candidate, error) {
	var result dbmodels.Candidate
	locked, err := lock.WithDelay(ctx, lock.CandidateKey(id), lockWait, func() error {
		rec, err := i.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated, write, err := change(rec)
		if err != nil {
			return err
		}
		if !write {
			result = rec
			return nil
		}
		updated.Version = rec.Version + 1
		if err = i.store.Put(ctx, updated); err != nil {
			return translateStoreError(err, id)
		}
		result = updated
		return nil
	})
	if err != nil {
		return dbmodels.Candidate{}, err
	}
	if !locked {
		return dbmodels.Candidate{}, apperr.Conflict("candidate %v is being updated, try again", id)
	}
	return result, nil
}

func translateStoreError(err error, id string) error {
	switch {
	case errors.Is(err, candidatestore.ErrStaleVersion):
		return apperr.Conflict("candidate %v was changed by someone else, reload it", id)
	case errors.Is(err, candidatestore.ErrNotFound):
		return apperr.NotFound("candidate %v not found", id)
	}
	log.WithError(err).WithField("candidate_id", id).Error("error saving candidate")
	return apperr.Persistence(err, "error saving candidate")
}
