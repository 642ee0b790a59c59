package candidateapimodels

import (
	dbmodels "smarthire-backend/models/db"
)

// TransitionData is the optional payload of a lifecycle transition. Which
// fields are read depends on the transition.
type TransitionData struct {
	Date        string                 `json:"date"`        // Interview date YYYY-MM-DD
	Time        string                 `json:"time"`        // Interview time HH:MM
	Interviewer string                 `json:"interviewer"` // Interviewer name
	Type        dbmodels.InterviewType `json:"type"`        // In-Person or Onboard
	Feedback    string                 `json:"feedback"`    // Interview feedback
	Score       *float64               `json:"score"`       // Interview score 0..10
	Reason      string                 `json:"reason"`      // Rejection reason
	Evidence    string                 `json:"evidence"`    // Evidence reference
	Notes       string                 `json:"notes"`       // Surveillance notes
}

type TestResultData struct {
	Score   int               `json:"score"`
	Answers map[string]string `json:"answers"`
}
