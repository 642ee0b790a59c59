package reportapimodels

import (
	"smarthire-backend/models"
)

type StatusCount struct {
	Status models.ApplicationStatus `json:"status"`
	Count  int                      `json:"count"`
}

type StageCount struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Total      int    `json:"total"`
	Hired      int    `json:"hired"`
}

// Summary is the pipeline snapshot shown on the HR dashboard.
type Summary struct {
	Total             int               `json:"total"`
	ByStatus          []StatusCount     `json:"byStatus"`
	ByStage           []StageCount      `json:"byStage"`
	ByDepartment      []DepartmentCount `json:"byDepartment"`
	InterviewQueue    int               `json:"interviewQueue"`    // waiting for an interview to be scheduled
	SurveillanceQueue int               `json:"surveillanceQueue"` // waiting for a surveillance check
	ReadyForOffer     int               `json:"readyForOffer"`     // surveillance cleared, no offer yet
	OffersAccepted    int               `json:"offersAccepted"`    // offer accepted at any point
	Hired             int               `json:"hired"`
	Rejected          int               `json:"rejected"`
	TestsCompleted    int               `json:"testsCompleted"`
	AverageTestScore  float64           `json:"averageTestScore"`
}
