package analytics

import (
	"context"
	"testing"

	candidatestore "smarthire-backend/lib/applicant/store"
	xlsexport "smarthire-backend/lib/export/xls"
	stageresolver "smarthire-backend/lib/stage-resolver"
	"smarthire-backend/models"
	reportapimodels "smarthire-backend/models/api/report"
	dbmodels "smarthire-backend/models/db"

	"github.com/stretchr/testify/require"
)

func pipeline() []dbmodels.Candidate {
	return []dbmodels.Candidate{
		{Status: models.StatusNew, Department: "Kitchen"},
		{Status: models.StatusNew, PreEmploymentTest: &dbmodels.PreEmploymentTest{Score: 30}},
		{Status: models.StatusPendingSurveillance, Department: "Kitchen"},
		{Status: models.StatusSurveillanceCleared, Department: "Bar"},
		{Status: models.StatusJoiningScheduled, Department: "Bar", PreEmploymentTest: &dbmodels.PreEmploymentTest{Score: 35}},
		{Status: models.StatusJoined, Department: "Kitchen"},
		{Status: models.StatusRejected, Department: "Bar", Rejection: &dbmodels.Rejection{Actor: models.HODRole}},
	}
}

func TestSummarize(t *testing.T) {
	t.Run(`counts`, func(t *testing.T) {
		summary := Summarize(pipeline())
		require.Equal(t, 7, summary.Total)
		require.Equal(t, 2, summary.InterviewQueue)
		require.Equal(t, 1, summary.SurveillanceQueue)
		require.Equal(t, 1, summary.ReadyForOffer)
		require.Equal(t, 2, summary.OffersAccepted)
		require.Equal(t, 1, summary.Hired)
		require.Equal(t, 1, summary.Rejected)
		require.Equal(t, 2, summary.TestsCompleted)
		require.Equal(t, 32.5, summary.AverageTestScore)

		require.Len(t, summary.ByStatus, len(models.AllStatuses))
		require.Equal(t, reportapimodels.StatusCount{Status: models.StatusNew, Count: 2}, summary.ByStatus[0])
		require.Equal(t, []reportapimodels.DepartmentCount{
			{Department: "Bar", Total: 3},
			{Department: "Kitchen", Total: 3, Hired: 1},
			{Department: unassignedDepartment, Total: 1},
		}, summary.ByDepartment)

		require.Len(t, summary.ByStage, stageresolver.StageCount())
		require.Equal(t, 2, summary.ByStage[stageresolver.StageApplied].Count)
		require.Equal(t, 1, summary.ByStage[stageresolver.StageHODInterview].Count)
		require.Equal(t, 1, summary.ByStage[stageresolver.StageSurveillanceCheck].Count)
		require.Equal(t, 1, summary.ByStage[stageresolver.StageHired].Count)
	})
	t.Run(`empty`, func(t *testing.T) {
		summary := Summarize(nil)
		require.Equal(t, 0, summary.Total)
		require.Equal(t, 0.0, summary.AverageTestScore)
		require.Empty(t, summary.ByDepartment)
		require.Len(t, summary.ByStatus, len(models.AllStatuses))
	})
}

func TestHandler(t *testing.T) {
	ctx := context.Background()
	store := candidatestore.NewMemoryInstance()
	for _, rec := range pipeline() {
		_, err := store.Create(ctx, rec)
		require.NoError(t, err)
	}
	xlsexport.NewHandler()
	NewHandler(store)

	summary, err := Instance.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, summary.Total)

	buf, err := Instance.ExportToXls(ctx)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())
}
