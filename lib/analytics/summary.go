package analytics

import (
	"math"
	"slices"
	stageresolver "smarthire-backend/lib/stage-resolver"
	"smarthire-backend/models"
	reportapimodels "smarthire-backend/models/api/report"
	dbmodels "smarthire-backend/models/db"
	"sort"
)

const unassignedDepartment = "Unassigned"

var offerAcceptedStatuses = []models.ApplicationStatus{
	models.StatusOfferAccepted,
	models.StatusJoiningScheduled,
	models.StatusJoined,
}

// Summarize counts the pipeline. Statuses and stages are listed in pipeline
// order including zero counts, departments by name.
func Summarize(list []dbmodels.Candidate) reportapimodels.Summary {
	statusCounts := map[models.ApplicationStatus]int{}
	stageCounts := make([]int, stageresolver.StageCount())
	departments := map[string]*reportapimodels.DepartmentCount{}
	result := reportapimodels.Summary{Total: len(list)}
	testScoreSum := 0

	for _, rec := range list {
		statusCounts[rec.Status]++
		stageCounts[stageresolver.Index(rec)]++

		name := rec.Department
		if name == "" {
			name = unassignedDepartment
		}
		department, ok := departments[name]
		if !ok {
			department = &reportapimodels.DepartmentCount{Department: name}
			departments[name] = department
		}
		department.Total++

		switch rec.Status {
		case models.StatusNew:
			result.InterviewQueue++
		case models.StatusPendingSurveillance:
			result.SurveillanceQueue++
		case models.StatusSurveillanceCleared:
			result.ReadyForOffer++
		case models.StatusJoined:
			result.Hired++
			department.Hired++
		case models.StatusRejected:
			result.Rejected++
		}
		if slices.Contains(offerAcceptedStatuses, rec.Status) {
			result.OffersAccepted++
		}
		if rec.PreEmploymentTest != nil {
			result.TestsCompleted++
			testScoreSum += rec.PreEmploymentTest.Score
		}
	}

	for _, status := range models.AllStatuses {
		result.ByStatus = append(result.ByStatus, reportapimodels.StatusCount{Status: status, Count: statusCounts[status]})
	}
	for index, count := range stageCounts {
		result.ByStage = append(result.ByStage, reportapimodels.StageCount{Index: index, Name: stageresolver.StageName(index), Count: count})
	}
	result.ByDepartment = []reportapimodels.DepartmentCount{}
	for _, department := range departments {
		result.ByDepartment = append(result.ByDepartment, *department)
	}
	sort.Slice(result.ByDepartment, func(a, b int) bool {
		return result.ByDepartment[a].Department < result.ByDepartment[b].Department
	})
	if result.TestsCompleted > 0 {
		result.AverageTestScore = math.Round(float64(testScoreSum)/float64(result.TestsCompleted)*10) / 10
	}
	return result
}
