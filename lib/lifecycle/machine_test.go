package lifecycle

import (
	"slices"
	"testing"
	"time"

	"smarthire-backend/lib/apperr"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"

	"github.com/stretchr/testify/require"
)

var (
	scheduler    = models.Actor{ID: "s1", Name: "Sam Scheduler", Role: models.SchedulerRole}
	hod          = models.Actor{ID: "h1", Name: "Omar HOD", Role: models.HODRole}
	surveillance = models.Actor{ID: "v1", Name: "Vic Surveillance", Role: models.SurveillanceRole}
	admin        = models.Actor{ID: "a1", Name: "Ada Admin", Role: models.AdminRole}
	created      = time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newCandidate(status models.ApplicationStatus) dbmodels.Candidate {
	return dbmodels.Candidate{
		ID:       "c1",
		FullName: "Ali Khan",
		Status:   status,
		StatusHistory: []dbmodels.AuditLog{
			{ID: "e0", Timestamp: created, User: "Hana HR", Role: models.HRRole, Action: "Application Created", Kind: models.AuditCreated},
		},
	}
}

func score(v float64) *float64 {
	return &v
}

func TestScheduleInterview(t *testing.T) {
	m := New(fixedClock(created.Add(time.Hour)))

	t.Run(`creates interview and entry`, func(t *testing.T) {
		c := newCandidate(models.StatusNew)
		result, err := m.Apply(c, ScheduleInterview, scheduler, candidateapimodels.TransitionData{Date: "2024-01-10", Time: "14:00", Interviewer: "Omar"})
		require.NoError(t, err)
		require.Equal(t, models.StatusInterviewScheduled, result.Status)
		require.Len(t, result.StatusHistory, 2)
		last := result.StatusHistory[1]
		require.Equal(t, "Interview Scheduled for 2024-01-10 at 14:00", last.Action)
		require.Equal(t, models.AuditInterviewScheduled, last.Kind)
		require.Equal(t, "Sam Scheduler", last.User)
		require.Equal(t, models.SchedulerRole, last.Role)
		require.NotNil(t, result.Interview)
		require.Equal(t, "2024-01-10", result.Interview.Date)
		require.Equal(t, "14:00", result.Interview.Time)
		require.Equal(t, dbmodels.InterviewInPerson, result.Interview.Type)

		require.Equal(t, models.StatusNew, c.Status)
		require.Len(t, c.StatusHistory, 1)
		require.Nil(t, c.Interview)
	})
	t.Run(`missing or malformed payload`, func(t *testing.T) {
		c := newCandidate(models.StatusNew)
		payloads := []candidateapimodels.TransitionData{
			{Time: "14:00"},
			{Date: "2024-01-10"},
			{Date: "10.01.2024", Time: "14:00"},
			{Date: "2024-01-10", Time: "2pm"},
			{Date: "2024-01-10", Time: "14:00", Type: "Phone"},
		}
		for _, payload := range payloads {
			result, err := m.Apply(c, ScheduleInterview, scheduler, payload)
			require.True(t, apperr.IsValidation(err), payload)
			require.Equal(t, c, result)
		}
	})
	t.Run(`wrong role`, func(t *testing.T) {
		c := newCandidate(models.StatusNew)
		_, err := m.Apply(c, ScheduleInterview, hod, candidateapimodels.TransitionData{Date: "2024-01-10", Time: "14:00"})
		require.True(t, apperr.IsAuthorization(err))
	})
	t.Run(`authorization is checked before payload`, func(t *testing.T) {
		c := newCandidate(models.StatusNew)
		_, err := m.Apply(c, ScheduleInterview, admin, candidateapimodels.TransitionData{})
		require.True(t, apperr.IsAuthorization(err))
	})
}

func TestInterviewOutcome(t *testing.T) {
	m := New(fixedClock(created.Add(time.Hour)))

	t.Run(`select adds two strictly ordered entries`, func(t *testing.T) {
		c := newCandidate(models.StatusInterviewScheduled)
		c.Interview = &dbmodels.Interview{ID: "i1", Date: "2024-01-10", Time: "14:00"}
		result, err := m.Apply(c, InterviewSelect, hod, candidateapimodels.TransitionData{Feedback: "strong", Score: score(8)})
		require.NoError(t, err)
		require.Equal(t, models.StatusPendingSurveillance, result.Status)
		require.Len(t, result.StatusHistory, 3)
		require.Equal(t, "Interview Completed", result.StatusHistory[1].Action)
		require.Equal(t, "Selected by HOD", result.StatusHistory[2].Action)
		require.True(t, result.StatusHistory[2].Timestamp.After(result.StatusHistory[1].Timestamp))
		require.Equal(t, "strong", result.Interview.Feedback)
		require.Equal(t, 8.0, result.Interview.Score)
		require.Equal(t, dbmodels.RecommendationPass, result.Interview.Recommendation)
		require.Equal(t, "", c.Interview.Feedback)
	})
	t.Run(`pending keeps the decision open`, func(t *testing.T) {
		c := newCandidate(models.StatusInterviewScheduled)
		result, err := m.Apply(c, InterviewPending, hod, candidateapimodels.TransitionData{})
		require.NoError(t, err)
		require.Equal(t, models.StatusInterviewCompleted, result.Status)
		require.Equal(t, "Interview Completed (Decision Pending)", result.StatusHistory[1].Action)

		result, err = m.Apply(result, InterviewSelect, hod, candidateapimodels.TransitionData{})
		require.NoError(t, err)
		require.Equal(t, models.StatusPendingSurveillance, result.Status)
	})
	t.Run(`reject records hod rejection`, func(t *testing.T) {
		c := newCandidate(models.StatusInterviewScheduled)
		result, err := m.Apply(c, InterviewReject, hod, candidateapimodels.TransitionData{})
		require.NoError(t, err)
		require.Equal(t, models.StatusRejected, result.Status)
		require.Len(t, result.StatusHistory, 3)
		require.Equal(t, models.AuditRejected, result.StatusHistory[2].Kind)
		require.Equal(t, "Rejected by HOD", result.StatusHistory[2].Action)
		require.Equal(t, models.HODRole, result.Rejection.Actor)
		require.Equal(t, DefaultInterviewRejectReason, result.Rejection.Reason)
		require.Equal(t, result.StatusHistory[2].Timestamp, result.Rejection.Timestamp)
	})
	t.Run(`score out of range`, func(t *testing.T) {
		c := newCandidate(models.StatusInterviewScheduled)
		_, err := m.Apply(c, InterviewSelect, hod, candidateapimodels.TransitionData{Score: score(11)})
		require.True(t, apperr.IsValidation(err))
	})
	t.Run(`not from new`, func(t *testing.T) {
		c := newCandidate(models.StatusNew)
		_, err := m.Apply(c, InterviewSelect, hod, candidateapimodels.TransitionData{})
		require.True(t, apperr.IsAuthorization(err))
	})
}

func TestSurveillance(t *testing.T) {
	m := New(fixedClock(created.Add(time.Hour)))

	t.Run(`clear`, func(t *testing.T) {
		c := newCandidate(models.StatusPendingSurveillance)
		result, err := m.Apply(c, SurveillanceClear, surveillance, candidateapimodels.TransitionData{Evidence: "evidence/c1/report.pdf"})
		require.NoError(t, err)
		require.Equal(t, models.StatusSurveillanceCleared, result.Status)
		require.Equal(t, dbmodels.SurveillanceClear, result.SurveillanceReport.Status)
		require.Equal(t, "evidence/c1/report.pdf", result.SurveillanceReport.ReportURL)
		require.Equal(t, "Surveillance Cleared", result.StatusHistory[1].Action)
	})
	t.Run(`flag is terminal`, func(t *testing.T) {
		c := newCandidate(models.StatusPendingSurveillance)
		result, err := m.Apply(c, SurveillanceFlag, surveillance, candidateapimodels.TransitionData{Notes: "mismatch"})
		require.NoError(t, err)
		require.Equal(t, models.StatusSurveillanceFlagged, result.Status)
		require.Equal(t, dbmodels.SurveillanceFlagged, result.SurveillanceReport.Status)
		require.True(t, result.Status.IsTerminal())
		for _, role := range []models.UserRole{models.AdminRole, models.HRRole, models.HODRole, models.SchedulerRole, models.SurveillanceRole} {
			require.Empty(t, Available(result, role))
		}
	})
	t.Run(`reject`, func(t *testing.T) {
		c := newCandidate(models.StatusPendingSurveillance)
		result, err := m.Apply(c, SurveillanceReject, surveillance, candidateapimodels.TransitionData{Reason: "record found"})
		require.NoError(t, err)
		require.Equal(t, models.StatusRejected, result.Status)
		require.Equal(t, "Application Rejected by Surveillance", result.StatusHistory[1].Action)
		require.Equal(t, models.SurveillanceRole, result.Rejection.Actor)
		require.Equal(t, "record found", result.Rejection.Reason)
	})
	t.Run(`admin cannot clear`, func(t *testing.T) {
		c := newCandidate(models.StatusPendingSurveillance)
		result, err := m.Apply(c, SurveillanceClear, admin, candidateapimodels.TransitionData{})
		require.True(t, apperr.IsAuthorization(err))
		require.Equal(t, c, result)
	})
}

func TestAdminSteps(t *testing.T) {
	m := New(fixedClock(created.Add(time.Hour)))
	c := newCandidate(models.StatusSurveillanceCleared)

	c, err := m.Apply(c, OfferAccepted, admin, candidateapimodels.TransitionData{})
	require.NoError(t, err)
	require.Equal(t, models.StatusOfferAccepted, c.Status)
	c, err = m.Apply(c, JoiningScheduled, admin, candidateapimodels.TransitionData{})
	require.NoError(t, err)
	require.Equal(t, models.StatusJoiningScheduled, c.Status)
	c, err = m.Apply(c, MarkJoined, admin, candidateapimodels.TransitionData{})
	require.NoError(t, err)
	require.Equal(t, models.StatusJoined, c.Status)
	require.Equal(t, []string{"Application Created", "Offer Accepted", "Joining Scheduled", "Marked as Joined"}, actions(c))

	_, err = m.Apply(c, MarkJoined, admin, candidateapimodels.TransitionData{})
	require.True(t, apperr.IsAuthorization(err))
}

func TestTimestamps(t *testing.T) {
	t.Run(`clock behind last entry`, func(t *testing.T) {
		m := New(fixedClock(created.Add(-time.Hour)))
		c := newCandidate(models.StatusInterviewScheduled)
		result, err := m.Apply(c, InterviewSelect, hod, candidateapimodels.TransitionData{})
		require.NoError(t, err)
		require.Equal(t, created, result.StatusHistory[1].Timestamp)
		require.Equal(t, created.Add(time.Millisecond), result.StatusHistory[2].Timestamp)
	})
	t.Run(`truncated to milliseconds`, func(t *testing.T) {
		now := created.Add(time.Hour + 1500*time.Microsecond)
		m := New(fixedClock(now))
		c := newCandidate(models.StatusNew)
		result, err := m.Apply(c, ScheduleInterview, scheduler, candidateapimodels.TransitionData{Date: "2024-01-10", Time: "14:00"})
		require.NoError(t, err)
		require.Equal(t, created.Add(time.Hour+time.Millisecond), result.StatusHistory[1].Timestamp)
	})
}

func TestParse(t *testing.T) {
	transition, err := Parse("mark_joined")
	require.NoError(t, err)
	require.Equal(t, MarkJoined, transition)

	_, err = Parse("promote")
	require.True(t, apperr.IsAuthorization(err))

	c := newCandidate(models.StatusNew)
	_, err = New(nil).Apply(c, Transition("promote"), admin, candidateapimodels.TransitionData{})
	require.True(t, apperr.IsAuthorization(err))
}

func TestAvailable(t *testing.T) {
	c := newCandidate(models.StatusInterviewScheduled)
	require.Equal(t, []Transition{InterviewSelect, InterviewPending, InterviewReject}, Available(c, models.HODRole))
	require.Empty(t, Available(c, models.SchedulerRole))
}

// statusByKind is the status each state-changing entry leaves the candidate in.
var statusByKind = map[models.AuditEventKind]models.ApplicationStatus{
	models.AuditCreated:             models.StatusNew,
	models.AuditInterviewScheduled:  models.StatusInterviewScheduled,
	models.AuditInterviewCompleted:  models.StatusInterviewCompleted,
	models.AuditSelected:            models.StatusPendingSurveillance,
	models.AuditRejected:            models.StatusRejected,
	models.AuditSurveillanceCleared: models.StatusSurveillanceCleared,
	models.AuditSurveillanceFlagged: models.StatusSurveillanceFlagged,
	models.AuditOfferAccepted:       models.StatusOfferAccepted,
	models.AuditJoiningScheduled:    models.StatusJoiningScheduled,
	models.AuditJoined:              models.StatusJoined,
}

func impliedStatus(t *testing.T, history []dbmodels.AuditLog) models.ApplicationStatus {
	for idx := len(history) - 1; idx >= 0; idx-- {
		if !history[idx].Kind.IsStateChange() {
			continue
		}
		status, ok := statusByKind[history[idx].Kind]
		require.True(t, ok, history[idx].Kind)
		return status
	}
	require.Fail(t, "history has no state change")
	return ""
}

func TestHistoryMatchesStatus(t *testing.T) {
	m := New(fixedClock(created.Add(time.Hour)))
	roles := []models.UserRole{models.AdminRole, models.HRRole, models.HODRole, models.SchedulerRole, models.SurveillanceRole, models.CandidateRole}
	actors := map[models.UserRole]models.Actor{
		models.SchedulerRole:    scheduler,
		models.HODRole:          hod,
		models.SurveillanceRole: surveillance,
		models.AdminRole:        admin,
	}
	payload := candidateapimodels.TransitionData{Date: "2024-01-10", Time: "14:00"}

	require.False(t, models.AuditFieldChanged.IsStateChange())
	require.False(t, models.AuditTestCompleted.IsStateChange())

	paths := 0
	var walk func(c dbmodels.Candidate, path []Transition)
	walk = func(c dbmodels.Candidate, path []Transition) {
		require.Equal(t, c.Status, impliedStatus(t, c.StatusHistory), path)

		// entries that do not change the status never move the implied one
		noise := c.Clone()
		noise.StatusHistory = append(noise.StatusHistory,
			dbmodels.AuditLog{ID: "n1", Timestamp: NextTimestamp(c.StatusHistory, created), Kind: models.AuditFieldChanged, Action: "Address changed"},
			dbmodels.AuditLog{ID: "n2", Timestamp: NextTimestamp(c.StatusHistory, created).Add(time.Millisecond), Kind: models.AuditTestCompleted, Action: "Test Completed"},
		)
		require.Equal(t, c.Status, impliedStatus(t, noise.StatusHistory), path)

		next := 0
		for _, role := range roles {
			for _, transition := range Available(c, role) {
				next++
				result, err := m.Apply(c, transition, actors[role], payload)
				require.NoError(t, err, append(path, transition))
				require.GreaterOrEqual(t, len(result.StatusHistory), len(c.StatusHistory), append(path, transition))
				target, ok := Target(transition)
				require.True(t, ok)
				require.Equal(t, target, result.Status)

				result, err = m.Apply(noise, transition, actors[role], payload)
				require.NoError(t, err)
				require.Equal(t, target, impliedStatus(t, result.StatusHistory), append(path, transition))

				if result.Status == c.Status {
					// a repeated pending decision loops on Interview Completed
					continue
				}
				walk(result, append(slices.Clone(path), transition))
			}
		}
		if next == 0 {
			paths++
			require.True(t, c.Status.IsTerminal(), path)
		}
	}
	walk(newCandidate(models.StatusNew), nil)
	require.Greater(t, paths, 5)
}

func actions(c dbmodels.Candidate) []string {
	result := []string{}
	for _, rec := range c.StatusHistory {
		result = append(result, rec.Action)
	}
	return result
}
