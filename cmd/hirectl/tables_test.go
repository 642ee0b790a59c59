package main

import (
	"bytes"
	"testing"
	"time"

	"smarthire-backend/lib/analytics"
	stageresolver "smarthire-backend/lib/stage-resolver"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"

	"github.com/stretchr/testify/require"
)

func sampleCandidate() dbmodels.Candidate {
	at := time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)
	return dbmodels.Candidate{
		ID:         "c-1",
		CreatedAt:  at,
		FullName:   "Ali Khan",
		Vacancy:    "Chef",
		Department: "Kitchen",
		Status:     models.StatusNew,
		StatusHistory: []dbmodels.AuditLog{
			{ID: "a-1", Timestamp: at, User: "Hana HR", Role: models.HRRole, Action: "Application Created", Kind: models.AuditCreated},
		},
	}
}

func TestRender(t *testing.T) {
	rec := sampleCandidate()

	t.Run(`candidates`, func(t *testing.T) {
		var out bytes.Buffer
		renderCandidates(&out, []candidateapimodels.CandidateView{{
			Candidate:  rec,
			StageIndex: stageresolver.StageApplied,
			StageName:  stageresolver.StageName(stageresolver.StageApplied),
		}}, 1)
		require.Contains(t, out.String(), "Ali Khan")
		require.Contains(t, out.String(), "1. Applied")
		require.Contains(t, out.String(), "2024-01-09 09:00")
	})
	t.Run(`stage tracker and history`, func(t *testing.T) {
		var out bytes.Buffer
		renderStages(&out, stageresolver.Resolve(rec))
		renderHistory(&out, rec.StatusHistory)
		require.Contains(t, out.String(), "▶ Applied")
		require.Contains(t, out.String(), "Application Created")
		require.Contains(t, out.String(), "Hana HR")
	})
	t.Run(`report`, func(t *testing.T) {
		var out bytes.Buffer
		renderSummary(&out, analytics.Summarize([]dbmodels.Candidate{rec}))
		require.Contains(t, out.String(), "Interview queue")
		require.Contains(t, out.String(), "Kitchen")
	})
}
