package applicant

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"smarthire-backend/lib/apperr"
	candidatestore "smarthire-backend/lib/applicant/store"
	"smarthire-backend/lib/lifecycle"
	stageresolver "smarthire-backend/lib/stage-resolver"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var (
	hrActor           = models.Actor{ID: "u-hr", Name: "Hana HR", Role: models.HRRole}
	hodActor          = models.Actor{ID: "u-hod", Name: "Omar HOD", Role: models.HODRole}
	schedulerActor    = models.Actor{ID: "u-sch", Name: "Sam Scheduler", Role: models.SchedulerRole}
	surveillanceActor = models.Actor{ID: "u-sur", Name: "Vic Surveillance", Role: models.SurveillanceRole}
	adminActor        = models.Actor{ID: "u-adm", Name: "Ada Admin", Role: models.AdminRole}
)

// testClock advances by one second on every read.
type testClock struct {
	at time.Time
}

func (c *testClock) Now() time.Time {
	c.at = c.at.Add(time.Second)
	return c.at
}

type recordingNotifier struct {
	transitions []lifecycle.Transition
}

func (n *recordingNotifier) CandidateTransitioned(ctx context.Context, rec dbmodels.Candidate, transition lifecycle.Transition) {
	n.transitions = append(n.transitions, transition)
}

// failingStore fails every write.
type failingStore struct {
	candidatestore.Provider
}

func (f failingStore) Put(ctx context.Context, rec dbmodels.Candidate) error {
	return errors.New("disk full")
}

func (f failingStore) Create(ctx context.Context, rec dbmodels.Candidate) (string, error) {
	return "", errors.New("disk full")
}

func applicationForm() candidateapimodels.CandidateData {
	return candidateapimodels.CandidateData{
		FullName:         "Ali Khan",
		Dob:              "1995-03-14",
		Contact:          dbmodels.Contact{Phone: "+971500000000", Email: "ali@example.com"},
		EmergencyContact: dbmodels.EmergencyContact{Name: "Sara Khan", Phone: "+971500000001"},
		Address:          "Dubai",
		Vacancy:          "Chef",
		Department:       "Kitchen",
	}
}

func newService(store candidatestore.Provider) (Provider, *recordingNotifier) {
	clock := &testClock{at: time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}
	return NewInstance(store, clock.Now, notifier), notifier
}

func TestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	service, notifier := newService(candidatestore.NewMemoryInstance())

	rec, err := service.Create(ctx, hrActor, applicationForm())
	require.NoError(t, err)
	require.Equal(t, models.StatusNew, rec.Status)
	require.Len(t, rec.StatusHistory, 1)
	require.Equal(t, "Application Created", rec.StatusHistory[0].Action)
	require.Equal(t, "Hana HR", rec.StatusHistory[0].User)

	rec, err = service.ApplyTransition(ctx, rec.ID, "schedule_interview", schedulerActor, candidateapimodels.TransitionData{Date: "2024-01-10", Time: "14:00"})
	require.NoError(t, err)
	require.Equal(t, models.StatusInterviewScheduled, rec.Status)
	require.Len(t, rec.StatusHistory, 2)
	require.Equal(t, "2024-01-10", rec.Interview.Date)
	require.Equal(t, "14:00", rec.Interview.Time)

	rec, err = service.ApplyTransition(ctx, rec.ID, "interview_select", hodActor, candidateapimodels.TransitionData{})
	require.NoError(t, err)
	require.Equal(t, models.StatusPendingSurveillance, rec.Status)
	require.Len(t, rec.StatusHistory, 4)
	require.True(t, rec.StatusHistory[3].Timestamp.After(rec.StatusHistory[2].Timestamp))

	rec, err = service.ApplyTransition(ctx, rec.ID, "surveillance_clear", surveillanceActor, candidateapimodels.TransitionData{})
	require.NoError(t, err)
	require.Equal(t, models.StatusSurveillanceCleared, rec.Status)
	require.Equal(t, dbmodels.SurveillanceClear, rec.SurveillanceReport.Status)
	require.Len(t, rec.StatusHistory, 5)

	for _, name := range []string{"offer_accepted", "joining_scheduled", "mark_joined"} {
		rec, err = service.ApplyTransition(ctx, rec.ID, name, adminActor, candidateapimodels.TransitionData{})
		require.NoError(t, err, name)
	}
	require.Equal(t, models.StatusJoined, rec.Status)
	require.Len(t, rec.StatusHistory, 8)
	require.Equal(t, stageresolver.StageHired, service.ResolveStage(rec).CurrentIndex)

	stored, err := service.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Version, stored.Version)
	require.Equal(t, 8, stored.Version)
	for idx := 1; idx < len(stored.StatusHistory); idx++ {
		require.False(t, stored.StatusHistory[idx].Timestamp.Before(stored.StatusHistory[idx-1].Timestamp))
	}
	require.Equal(t, []lifecycle.Transition{
		lifecycle.ScheduleInterview,
		lifecycle.InterviewSelect,
		lifecycle.SurveillanceClear,
		lifecycle.OfferAccepted,
		lifecycle.JoiningScheduled,
		lifecycle.MarkJoined,
	}, notifier.transitions)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run(`missing required field`, func(t *testing.T) {
		service, _ := newService(newMemoryStore())
		data := applicationForm()
		data.EmergencyContact.Phone = ""
		_, err := service.Create(ctx, hrActor, data)
		require.True(t, apperr.IsValidation(err))
	})
	t.Run(`self service uses the candidate name`, func(t *testing.T) {
		service, _ := newService(newMemoryStore())
		rec, err := service.Create(ctx, models.Actor{Role: models.CandidateRole}, applicationForm())
		require.NoError(t, err)
		require.Equal(t, "Ali Khan", rec.StatusHistory[0].User)
		require.Equal(t, models.CandidateRole, rec.StatusHistory[0].Role)
	})
	t.Run(`scheduler cannot create`, func(t *testing.T) {
		service, _ := newService(newMemoryStore())
		_, err := service.Create(ctx, schedulerActor, applicationForm())
		require.True(t, apperr.IsAuthorization(err))
	})
	t.Run(`store failure`, func(t *testing.T) {
		service, _ := newService(failingStore{Provider: candidatestore.NewMemoryInstance()})
		_, err := service.Create(ctx, hrActor, applicationForm())
		require.True(t, apperr.IsPersistence(err))
	})
}

func TestApplyTransition(t *testing.T) {
	ctx := context.Background()

	t.Run(`unauthorized transition leaves the candidate unchanged`, func(t *testing.T) {
		store := candidatestore.NewMemoryInstance()
		service, notifier := newService(store)
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)
		before := snapshot(t, store, rec.ID)

		_, err = service.ApplyTransition(ctx, rec.ID, "schedule_interview", hodActor, candidateapimodels.TransitionData{Date: "2024-01-10", Time: "14:00"})
		require.True(t, apperr.IsAuthorization(err))
		_, err = service.ApplyTransition(ctx, rec.ID, "offer_accepted", adminActor, candidateapimodels.TransitionData{})
		require.True(t, apperr.IsAuthorization(err))
		_, err = service.ApplyTransition(ctx, rec.ID, "fire", adminActor, candidateapimodels.TransitionData{})
		require.True(t, apperr.IsAuthorization(err))

		require.Equal(t, before, snapshot(t, store, rec.ID))
		require.Empty(t, notifier.transitions)
	})
	t.Run(`invalid payload leaves the candidate unchanged`, func(t *testing.T) {
		store := candidatestore.NewMemoryInstance()
		service, _ := newService(store)
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)
		before := snapshot(t, store, rec.ID)

		_, err = service.ApplyTransition(ctx, rec.ID, "schedule_interview", schedulerActor, candidateapimodels.TransitionData{Time: "14:00"})
		require.True(t, apperr.IsValidation(err))
		require.Equal(t, before, snapshot(t, store, rec.ID))
	})
	t.Run(`unknown candidate`, func(t *testing.T) {
		service, _ := newService(candidatestore.NewMemoryInstance())
		_, err := service.ApplyTransition(ctx, "missing", "mark_joined", adminActor, candidateapimodels.TransitionData{})
		require.True(t, apperr.IsNotFound(err))
	})
	t.Run(`store failure`, func(t *testing.T) {
		memory := candidatestore.NewMemoryInstance()
		service, _ := newService(memory)
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)

		failing, _ := newService(failingStore{Provider: memory})
		_, err = failing.ApplyTransition(ctx, rec.ID, "schedule_interview", schedulerActor, candidateapimodels.TransitionData{Date: "2024-01-10", Time: "14:00"})
		require.True(t, apperr.IsPersistence(err))

		stored, err := service.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		require.Equal(t, models.StatusNew, stored.Status)
	})
}

func TestApplyFieldEdits(t *testing.T) {
	ctx := context.Background()

	t.Run(`hr rating edit recomputes the composite`, func(t *testing.T) {
		service, _ := newService(candidatestore.NewMemoryInstance())
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)

		edited := rec.Clone()
		edited.Ratings.HR = dbmodels.HRRating{Score: 1, Personality: 4, Attitude: 3, Presentable: 5, Communication: 4, Confidence: 4}
		result, err := service.ApplyFieldEdits(ctx, rec.ID, hrActor, edited)
		require.NoError(t, err)
		require.Equal(t, 4.0, result.Ratings.HR.Score)
		require.Len(t, result.StatusHistory, 6)
		require.Equal(t, `Ratings Hr Personality changed from "empty" to "4".`, result.StatusHistory[1].Action)
		require.Equal(t, stageresolver.StageHRScreening, service.ResolveStage(result).CurrentIndex)
		require.Equal(t, 2, result.Version)
	})
	t.Run(`hod cannot touch hr fields`, func(t *testing.T) {
		service, _ := newService(candidatestore.NewMemoryInstance())
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)

		edited := rec.Clone()
		edited.Ratings.HR.Personality = 5
		edited.FullName = "Changed"
		edited.Ratings.Manager.Score = 7
		result, err := service.ApplyFieldEdits(ctx, rec.ID, hodActor, edited)
		require.NoError(t, err)
		require.Equal(t, 0, result.Ratings.HR.Personality)
		require.Equal(t, 0.0, result.Ratings.HR.Score)
		require.Equal(t, "Ali Khan", result.FullName)
		require.Equal(t, 7.0, result.Ratings.Manager.Score)
		require.Len(t, result.StatusHistory, 2)
	})
	t.Run(`no changes no write`, func(t *testing.T) {
		service, _ := newService(candidatestore.NewMemoryInstance())
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)

		result, err := service.ApplyFieldEdits(ctx, rec.ID, hrActor, rec.Clone())
		require.NoError(t, err)
		require.Equal(t, 1, result.Version)
		require.Len(t, result.StatusHistory, 1)
	})
	t.Run(`roles without whitelist`, func(t *testing.T) {
		service, _ := newService(candidatestore.NewMemoryInstance())
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)
		edited := rec.Clone()
		edited.Address = "Sharjah"
		_, err = service.ApplyFieldEdits(ctx, rec.ID, schedulerActor, edited)
		require.True(t, apperr.IsAuthorization(err))
	})
	t.Run(`stale version`, func(t *testing.T) {
		service, _ := newService(candidatestore.NewMemoryInstance())
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)

		first := rec.Clone()
		first.Address = "Sharjah"
		_, err = service.ApplyFieldEdits(ctx, rec.ID, hrActor, first)
		require.NoError(t, err)

		second := rec.Clone()
		second.Department = "Bar"
		_, err = service.ApplyFieldEdits(ctx, rec.ID, hodActor, second)
		require.True(t, apperr.IsConflict(err))
	})
	t.Run(`required fields cannot be cleared`, func(t *testing.T) {
		service, _ := newService(candidatestore.NewMemoryInstance())
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)
		edited := rec.Clone()
		edited.FullName = ""
		_, err = service.ApplyFieldEdits(ctx, rec.ID, hrActor, edited)
		require.True(t, apperr.IsValidation(err))
	})
	t.Run(`hr sub-scores out of range`, func(t *testing.T) {
		service, _ := newService(candidatestore.NewMemoryInstance())
		rec, err := service.Create(ctx, hrActor, applicationForm())
		require.NoError(t, err)

		edited := rec.Clone()
		edited.Ratings.HR.Personality = 9
		edited.Ratings.HR.Attitude = -3
		_, err = service.ApplyFieldEdits(ctx, rec.ID, hrActor, edited)
		require.True(t, apperr.IsValidation(err))

		stored, err := service.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		require.Equal(t, 0, stored.Ratings.HR.Personality)
		require.Equal(t, 0, stored.Ratings.HR.Attitude)
		require.Len(t, stored.StatusHistory, 1)
		require.Equal(t, 1, stored.Version)

		edited = stored.Clone()
		edited.Ratings.HR.Confidence = 5
		result, err := service.ApplyFieldEdits(ctx, rec.ID, hrActor, edited)
		require.NoError(t, err)
		require.Equal(t, 5, result.Ratings.HR.Confidence)
	})
}

func TestCommentsAndTest(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(candidatestore.NewMemoryInstance())
	rec, err := service.Create(ctx, models.Actor{Role: models.CandidateRole}, applicationForm())
	require.NoError(t, err)

	t.Run(`comment`, func(t *testing.T) {
		result, err := service.AddComment(ctx, rec.ID, hodActor, candidateapimodels.CommentData{Comment: " good fit "})
		require.NoError(t, err)
		require.Len(t, result.Comments, 1)
		require.Equal(t, "good fit", result.Comments[0].Comment)
		require.Equal(t, models.HODRole, result.Comments[0].Role)
		require.Len(t, result.StatusHistory, 1)

		_, err = service.AddComment(ctx, rec.ID, hodActor, candidateapimodels.CommentData{Comment: "  "})
		require.True(t, apperr.IsValidation(err))
	})
	t.Run(`test result`, func(t *testing.T) {
		self := models.Actor{ID: rec.ID, Name: rec.FullName, Role: models.CandidateRole}

		_, err := service.RecordTestResult(ctx, rec.ID, models.Actor{ID: "other", Role: models.CandidateRole}, candidateapimodels.TestResultData{Score: 30})
		require.True(t, apperr.IsAuthorization(err))
		_, err = service.RecordTestResult(ctx, rec.ID, self, candidateapimodels.TestResultData{Score: 41})
		require.True(t, apperr.IsValidation(err))

		result, err := service.RecordTestResult(ctx, rec.ID, self, candidateapimodels.TestResultData{Score: 30})
		require.NoError(t, err)
		require.Equal(t, "Good", result.PreEmploymentTest.Rating)
		last, _ := result.LastAudit()
		require.Equal(t, "Pre-Employment Test Completed (Score: 30)", last.Action)
		require.Equal(t, models.AuditTestCompleted, last.Kind)
		require.Equal(t, "Ali Khan", last.User)
		require.Equal(t, models.StatusNew, result.Status)

		_, err = service.RecordTestResult(ctx, rec.ID, self, candidateapimodels.TestResultData{Score: 35})
		require.True(t, apperr.IsValidation(err))
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(candidatestore.NewMemoryInstance())
	for _, name := range []string{"Ali Khan", "Sara Ahmed"} {
		data := applicationForm()
		data.FullName = name
		_, err := service.Create(ctx, hrActor, data)
		require.NoError(t, err)
	}
	list, count, err := service.List(ctx, candidateapimodels.CandidateFilter{Search: "sara"})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
	require.Equal(t, "Sara Ahmed", list[0].FullName)
	require.Equal(t, "Applied", list[0].StageName)

	_, _, err = service.List(ctx, candidateapimodels.CandidateFilter{Status: "Hired"})
	require.True(t, apperr.IsValidation(err))

	far := candidateapimodels.CandidateFilter{}
	far.Page = 100000000000000001
	far.Limit = 100
	list, count, err = service.List(ctx, far)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
	require.Empty(t, list)
}

func newMemoryStore() candidatestore.Provider {
	return candidatestore.NewMemoryInstance()
}

func snapshot(t *testing.T, store candidatestore.Provider, id string) string {
	rec, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	body, err := json.Marshal(rec)
	require.NoError(t, err)
	return string(body)
}
