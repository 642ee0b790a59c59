package lifecycle

import (
	"fmt"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Transition string

const (
	ScheduleInterview  Transition = "schedule_interview"
	InterviewSelect    Transition = "interview_select"
	InterviewPending   Transition = "interview_pending"
	InterviewReject    Transition = "interview_reject"
	SurveillanceClear  Transition = "surveillance_clear"
	SurveillanceFlag   Transition = "surveillance_flag"
	SurveillanceReject Transition = "surveillance_reject"
	OfferAccepted      Transition = "offer_accepted"
	JoiningScheduled   Transition = "joining_scheduled"
	MarkJoined         Transition = "mark_joined"
)

const (
	DefaultInterviewRejectReason    = "Rejected after interview"
	DefaultSurveillanceRejectReason = "Rejected after surveillance check"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	maxInterviewScore = 10
)

// event is an audit entry before it gets an id, author and timestamp.
type event struct {
	kind    models.AuditEventKind
	action  string
	details string
}

type rule struct {
	from     []models.ApplicationStatus
	role     models.UserRole
	to       models.ApplicationStatus
	validate func(p candidateapimodels.TransitionData) error
	apply    func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event
}

var interviewStates = []models.ApplicationStatus{models.StatusInterviewScheduled, models.StatusInterviewCompleted}

var rules = map[Transition]rule{
	ScheduleInterview: {
		from:     []models.ApplicationStatus{models.StatusNew},
		role:     models.SchedulerRole,
		to:       models.StatusInterviewScheduled,
		validate: validateSchedule,
		apply:    scheduleInterview,
	},
	InterviewSelect: {
		from:     interviewStates,
		role:     models.HODRole,
		to:       models.StatusPendingSurveillance,
		validate: validateInterviewResult,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			recordInterviewResult(c, p, dbmodels.RecommendationPass)
			return []event{
				{kind: models.AuditInterviewCompleted, action: "Interview Completed"},
				{kind: models.AuditSelected, action: "Selected by HOD"},
			}
		},
	},
	InterviewPending: {
		from:     interviewStates,
		role:     models.HODRole,
		to:       models.StatusInterviewCompleted,
		validate: validateInterviewResult,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			recordInterviewResult(c, p, "")
			return []event{
				{kind: models.AuditInterviewCompleted, action: "Interview Completed (Decision Pending)"},
			}
		},
	},
	InterviewReject: {
		from:     interviewStates,
		role:     models.HODRole,
		to:       models.StatusRejected,
		validate: validateInterviewResult,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			recordInterviewResult(c, p, dbmodels.RecommendationFail)
			reason := reject(c, p, models.HODRole, DefaultInterviewRejectReason)
			return []event{
				{kind: models.AuditInterviewCompleted, action: "Interview Completed"},
				{kind: models.AuditRejected, action: "Rejected by HOD", details: reason},
			}
		},
	},
	SurveillanceClear: {
		from: []models.ApplicationStatus{models.StatusPendingSurveillance},
		role: models.SurveillanceRole,
		to:   models.StatusSurveillanceCleared,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			c.SurveillanceReport = newReport(dbmodels.SurveillanceClear, p)
			return []event{{kind: models.AuditSurveillanceCleared, action: "Surveillance Cleared"}}
		},
	},
	SurveillanceFlag: {
		from: []models.ApplicationStatus{models.StatusPendingSurveillance},
		role: models.SurveillanceRole,
		to:   models.StatusSurveillanceFlagged,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			c.SurveillanceReport = newReport(dbmodels.SurveillanceFlagged, p)
			return []event{{kind: models.AuditSurveillanceFlagged, action: "Surveillance Flagged", details: p.Notes}}
		},
	},
	SurveillanceReject: {
		from: []models.ApplicationStatus{models.StatusPendingSurveillance},
		role: models.SurveillanceRole,
		to:   models.StatusRejected,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			reason := reject(c, p, models.SurveillanceRole, DefaultSurveillanceRejectReason)
			return []event{{kind: models.AuditRejected, action: "Application Rejected by Surveillance", details: reason}}
		},
	},
	OfferAccepted: {
		from: []models.ApplicationStatus{models.StatusSurveillanceCleared},
		role: models.AdminRole,
		to:   models.StatusOfferAccepted,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			return []event{{kind: models.AuditOfferAccepted, action: "Offer Accepted"}}
		},
	},
	JoiningScheduled: {
		from: []models.ApplicationStatus{models.StatusOfferAccepted},
		role: models.AdminRole,
		to:   models.StatusJoiningScheduled,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			return []event{{kind: models.AuditJoiningScheduled, action: "Joining Scheduled"}}
		},
	},
	MarkJoined: {
		from: []models.ApplicationStatus{models.StatusJoiningScheduled},
		role: models.AdminRole,
		to:   models.StatusJoined,
		apply: func(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
			return []event{{kind: models.AuditJoined, action: "Marked as Joined"}}
		},
	},
}

// transitionOrder is the order in which available transitions are listed.
var transitionOrder = []Transition{
	ScheduleInterview,
	InterviewSelect,
	InterviewPending,
	InterviewReject,
	SurveillanceClear,
	SurveillanceFlag,
	SurveillanceReject,
	OfferAccepted,
	JoiningScheduled,
	MarkJoined,
}

func validateSchedule(p candidateapimodels.TransitionData) error {
	if p.Date == "" {
		return errors.New("interview date is required")
	}
	if _, err := time.Parse(dateLayout, p.Date); err != nil {
		return errors.New("interview date must be in YYYY-MM-DD format")
	}
	if p.Time == "" {
		return errors.New("interview time is required")
	}
	if _, err := time.Parse(timeLayout, p.Time); err != nil {
		return errors.New("interview time must be in HH:MM format")
	}
	switch p.Type {
	case "", dbmodels.InterviewInPerson, dbmodels.InterviewOnboard:
	default:
		return errors.Errorf("unknown interview type %v", p.Type)
	}
	return nil
}

func validateInterviewResult(p candidateapimodels.TransitionData) error {
	if p.Score != nil && (*p.Score < 0 || *p.Score > maxInterviewScore) {
		return errors.Errorf("interview score must be between 0 and %v", maxInterviewScore)
	}
	return nil
}

func scheduleInterview(c *dbmodels.Candidate, p candidateapimodels.TransitionData) []event {
	interviewType := p.Type
	if interviewType == "" {
		interviewType = dbmodels.InterviewInPerson
	}
	c.Interview = &dbmodels.Interview{
		ID:          uuid.NewString(),
		Interviewer: p.Interviewer,
		Date:        p.Date,
		Time:        p.Time,
		Type:        interviewType,
	}
	return []event{{
		kind:    models.AuditInterviewScheduled,
		action:  fmt.Sprintf("Interview Scheduled for %s at %s", p.Date, p.Time),
		details: p.Interviewer,
	}}
}

func recordInterviewResult(c *dbmodels.Candidate, p candidateapimodels.TransitionData, recommendation dbmodels.Recommendation) {
	if c.Interview == nil {
		c.Interview = &dbmodels.Interview{ID: uuid.NewString()}
	}
	if p.Feedback != "" {
		c.Interview.Feedback = p.Feedback
	}
	if p.Score != nil {
		c.Interview.Score = *p.Score
	}
	if recommendation != "" {
		c.Interview.Recommendation = recommendation
	}
}

// reject records the rejection. Its timestamp is set once the audit entry is stamped.
func reject(c *dbmodels.Candidate, p candidateapimodels.TransitionData, role models.UserRole, defaultReason string) string {
	reason := p.Reason
	if reason == "" {
		reason = defaultReason
	}
	c.Rejection = &dbmodels.Rejection{
		Reason:   reason,
		Actor:    role,
		Evidence: p.Evidence,
	}
	return reason
}

func newReport(status dbmodels.SurveillanceStatus, p candidateapimodels.TransitionData) *dbmodels.SurveillanceReport {
	return &dbmodels.SurveillanceReport{
		Status:    status,
		ReportURL: p.Evidence,
		Notes:     p.Notes,
	}
}
