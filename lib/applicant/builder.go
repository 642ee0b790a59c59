package applicant

import (
	"smarthire-backend/lib/apperr"
	"smarthire-backend/lib/lifecycle"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mohae/deepcopy"
)

// NewCandidate builds a New candidate from a validated application form with
// its single creation entry. Candidates applying on their own are recorded
// under their own name.
func NewCandidate(data candidateapimodels.CandidateData, actor models.Actor, now time.Time) (dbmodels.Candidate, error) {
	if err := data.Validate(); err != nil {
		return dbmodels.Candidate{}, apperr.Validation("%v", err)
	}
	data = deepcopy.Copy(data).(candidateapimodels.CandidateData)
	at := lifecycle.NextTimestamp(nil, now)
	author := actor.Name
	if actor.Role == models.CandidateRole || author == "" {
		author = strings.TrimSpace(data.FullName)
	}
	return dbmodels.Candidate{
		CreatedAt:             at,
		PhotoURL:              data.PhotoURL,
		FullName:              strings.TrimSpace(data.FullName),
		Dob:                   data.Dob,
		Age:                   data.Age,
		Contact:               data.Contact,
		EmergencyContact:      data.EmergencyContact,
		Address:               data.Address,
		MedicalConditions:     data.MedicalConditions,
		Religion:              data.Religion,
		MaritalStatus:         data.MaritalStatus,
		Vacancy:               data.Vacancy,
		PositionOffered:       data.PositionOffered,
		Department:            data.Department,
		ExpectedSalary:        data.ExpectedSalary,
		AccommodationRequired: data.AccommodationRequired,
		TransportRequired:     data.TransportRequired,
		TotalWorkExperience:   data.TotalWorkExperience,
		Qualifications:        data.Qualifications,
		WorkExperience:        data.WorkExperience,
		LanguagesKnown:        data.LanguagesKnown,
		References:            data.References,
		Status:                models.StatusNew,
		StatusHistory: []dbmodels.AuditLog{{
			ID:        uuid.NewString(),
			Timestamp: at,
			User:      author,
			Role:      actor.Role,
			Action:    "Application Created",
			Kind:      models.AuditCreated,
		}},
	}, nil
}
