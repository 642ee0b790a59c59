package candidateapimodels

import (
	"smarthire-backend/models"
	apimodels "smarthire-backend/models/api"
	dbmodels "smarthire-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	MaxQualifications = 3
	MaxWorkExperience = 3
	MaxReferences     = 3
	dateLayout        = "2006-01-02"
)

var maritalStatuses = map[string]bool{"Single": true, "Married": true, "Divorced": true, "Widowed": true, "Other": true}

// CandidateData is the application form. Required: fullName, dob,
// contact.phone, emergencyContact.name, emergencyContact.phone, address,
// vacancy.
type CandidateData struct {
	PhotoURL          string                    `json:"photoUrl"`
	FullName          string                    `json:"fullName"`
	Dob               string                    `json:"dob"` // YYYY-MM-DD
	Age               int                       `json:"age"`
	Contact           dbmodels.Contact          `json:"contact"`
	EmergencyContact  dbmodels.EmergencyContact `json:"emergencyContact"`
	Address           string                    `json:"address"`
	MedicalConditions string                    `json:"medicalConditions"`
	Religion          string                    `json:"religion"`
	MaritalStatus     string                    `json:"maritalStatus"`

	Vacancy               string `json:"vacancy"`
	PositionOffered       string `json:"positionOffered"`
	Department            string `json:"department"`
	ExpectedSalary        string `json:"expectedSalary"`
	AccommodationRequired bool   `json:"accommodationRequired"`
	TransportRequired     bool   `json:"transportRequired"`

	TotalWorkExperience string                    `json:"totalWorkExperience"`
	Qualifications      []dbmodels.Qualification  `json:"qualifications"`
	WorkExperience      []dbmodels.WorkExperience `json:"workExperience"`
	LanguagesKnown      string                    `json:"languagesKnown"`
	References          []dbmodels.Reference      `json:"references"`
}

func (c CandidateData) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", c.FullName},
		{"dob", c.Dob},
		{"contact.phone", c.Contact.Phone},
		{"emergencyContact.name", c.EmergencyContact.Name},
		{"emergencyContact.phone", c.EmergencyContact.Phone},
		{"address", c.Address},
		{"vacancy", c.Vacancy},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return errors.Errorf("field %v is required", field.name)
		}
	}
	if _, err := time.Parse(dateLayout, c.Dob); err != nil {
		return errors.New("dob must be in YYYY-MM-DD format")
	}
	if c.MaritalStatus != "" && !maritalStatuses[c.MaritalStatus] {
		return errors.Errorf("unknown marital status %v", c.MaritalStatus)
	}
	if c.Age < 0 {
		return errors.New("age must not be negative")
	}
	if len(c.Qualifications) > MaxQualifications {
		return errors.Errorf("at most %v qualifications are allowed", MaxQualifications)
	}
	if len(c.WorkExperience) > MaxWorkExperience {
		return errors.Errorf("at most %v work experience entries are allowed", MaxWorkExperience)
	}
	if len(c.References) > MaxReferences {
		return errors.Errorf("at most %v references are allowed", MaxReferences)
	}
	return nil
}

// ValidateCandidate checks that an edited snapshot still carries the
// application form invariants.
func ValidateCandidate(c dbmodels.Candidate) error {
	if err := validateHRRating(c.Ratings.HR); err != nil {
		return err
	}
	return CandidateData{
		FullName:         c.FullName,
		Dob:              c.Dob,
		Age:              c.Age,
		Contact:          c.Contact,
		EmergencyContact: c.EmergencyContact,
		Address:          c.Address,
		MaritalStatus:    c.MaritalStatus,
		Vacancy:          c.Vacancy,
		Qualifications:   c.Qualifications,
		WorkExperience:   c.WorkExperience,
		References:       c.References,
	}.Validate()
}

type CandidateFilter struct {
	apimodels.Pagination
	Status     models.ApplicationStatus `json:"status"`     // Filter by status
	Search     string                   `json:"search"`     // Substring of name, phone or vacancy
	Department string                   `json:"department"` // Filter by department
}

func (f CandidateFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return errors.Errorf("unknown status %v", f.Status)
	}
	return nil
}

type CandidateView struct {
	dbmodels.Candidate
	StageIndex int    `json:"stageIndex"` // Index of the current pipeline stage
	StageName  string `json:"stageName"`  // Name of the current pipeline stage
}

type CommentData struct {
	Comment string `json:"comment"`
}

func (c CommentData) Validate() error {
	if strings.TrimSpace(c.Comment) == "" {
		return errors.New("comment is empty")
	}
	return nil
}

// SelfServiceResponse is returned to a candidate who applied on their own.
type SelfServiceResponse struct {
	Candidate dbmodels.Candidate `json:"candidate"`
	Token     string             `json:"token"` // candidate scoped token for the pre-employment test
}

// validateHRRating accepts 0 as unset, anything else must be 1..5.
func validateHRRating(hr dbmodels.HRRating) error {
	subScores := []struct {
		name  string
		value int
	}{
		{"personality", hr.Personality},
		{"attitude", hr.Attitude},
		{"presentable", hr.Presentable},
		{"communication", hr.Communication},
		{"confidence", hr.Confidence},
	}
	for _, sub := range subScores {
		if sub.value != 0 && (sub.value < 1 || sub.value > 5) {
			return errors.Errorf("ratings.hr.%v must be between 1 and 5, got %v", sub.name, sub.value)
		}
	}
	return nil
}
