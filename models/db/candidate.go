package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"smarthire-backend/models"
	"time"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

// Candidate is the applicant document. It is stored whole and every lifecycle
// operation produces a new snapshot of it.
type Candidate struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`

	// personal
	PhotoURL          string           `json:"photoUrl,omitempty"`
	FullName          string           `json:"fullName"`
	Dob               string           `json:"dob"`
	Age               int              `json:"age,omitempty"`
	Contact           Contact          `json:"contact"`
	EmergencyContact  EmergencyContact `json:"emergencyContact"`
	Address           string           `json:"address"`
	MedicalConditions string           `json:"medicalConditions,omitempty"`
	Religion          string           `json:"religion,omitempty"`
	MaritalStatus     string           `json:"maritalStatus,omitempty"`

	// job and compensation
	Vacancy               string `json:"vacancy"`
	PositionOffered       string `json:"positionOffered,omitempty"`
	Department            string `json:"department,omitempty"`
	ExpectedSalary        string `json:"expectedSalary,omitempty"`
	AccommodationRequired bool   `json:"accommodationRequired"`
	TransportRequired     bool   `json:"transportRequired"`

	// qualifications
	TotalWorkExperience string           `json:"totalWorkExperience,omitempty"`
	Qualifications      []Qualification  `json:"qualifications,omitempty"`
	WorkExperience      []WorkExperience `json:"workExperience,omitempty"`
	LanguagesKnown      string           `json:"languagesKnown,omitempty"`
	References          []Reference      `json:"references,omitempty"`

	Ratings Ratings `json:"ratings"`

	// lifecycle
	Status             models.ApplicationStatus `json:"status"`
	StatusHistory      []AuditLog               `json:"statusHistory"`
	Comments           []Comment                `json:"comments,omitempty"`
	Interview          *Interview               `json:"interview,omitempty"`
	SurveillanceReport *SurveillanceReport      `json:"surveillanceReport,omitempty"`
	Offer              *Offer                   `json:"offer,omitempty"`
	Rejection          *Rejection               `json:"rejection,omitempty"`
	PreEmploymentTest  *PreEmploymentTest       `json:"preEmploymentTest,omitempty"`
	EmployeeID         string                   `json:"employeeId,omitempty"`
}

type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Qualification struct {
	Name      string `json:"name"`
	Institute string `json:"institute"`
	Year      string `json:"year"`
}

type WorkExperience struct {
	Company          string `json:"company"`
	Role             string `json:"role"`
	From             string `json:"from"`
	To               string `json:"to"`
	Responsibilities string `json:"responsibilities,omitempty"`
}

type Reference struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Company  string `json:"company,omitempty"`
	Contact  string `json:"contact,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Ratings struct {
	HR         HRRating         `json:"hr"`
	Manager    ScoreRating      `json:"manager"`
	CM         ScoreRating      `json:"cm"`
	Department DepartmentRating `json:"department"`
}

// HRRating holds the HR interview assessment. Sub-scores are 1..5, zero means
// not rated. Score is derived from the sub-scores.
type HRRating struct {
	Score         float64 `json:"score"`
	Interviewer   string  `json:"interviewer,omitempty"`
	Personality   int     `json:"personality,omitempty"`
	Attitude      int     `json:"attitude,omitempty"`
	Presentable   int     `json:"presentable,omitempty"`
	Communication int     `json:"communication,omitempty"`
	Confidence    int     `json:"confidence,omitempty"`
	Evaluation    string  `json:"evaluation,omitempty"`
}

type ScoreRating struct {
	Score float64 `json:"score,omitempty"`
}

type DepartmentRating struct {
	Interviewer string `json:"interviewer,omitempty"`
}

type InterviewType string

const (
	InterviewInPerson InterviewType = "In-Person"
	InterviewOnboard  InterviewType = "Onboard"
)

type Recommendation string

const (
	RecommendationPass Recommendation = "Pass"
	RecommendationFail Recommendation = "Fail"
)

type Interview struct {
	ID             string         `json:"id"`
	Interviewer    string         `json:"interviewer,omitempty"`
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	Type           InterviewType  `json:"type,omitempty"`
	Feedback       string         `json:"feedback,omitempty"`
	Score          float64        `json:"score,omitempty"`
	Recommendation Recommendation `json:"recommendation,omitempty"`
}

type SurveillanceStatus string

const (
	SurveillanceClear   SurveillanceStatus = "Clear"
	SurveillanceFlagged SurveillanceStatus = "Flagged"
)

type SurveillanceReport struct {
	Status    SurveillanceStatus `json:"status"`
	ReportURL string             `json:"reportUrl,omitempty"` // evidence reference in file storage
	Notes     string             `json:"notes,omitempty"`
}

type Offer struct {
	Salary               string `json:"salary,omitempty"`
	JoiningDate          string `json:"joiningDate,omitempty"`
	AccommodationDetails string `json:"accommodationDetails,omitempty"`
}

type Rejection struct {
	Reason    string          `json:"reason"`
	Actor     models.UserRole `json:"actor"`
	Timestamp time.Time       `json:"timestamp"`
	Evidence  string          `json:"evidence,omitempty"`
}

type PreEmploymentTest struct {
	Score       int               `json:"score"`
	Total       int               `json:"total"`
	Rating      string            `json:"rating"`
	Answers     map[string]string `json:"answers,omitempty"`
	CompletedAt time.Time         `json:"completedAt"`
}

type Comment struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	User      string          `json:"user"`
	UserID    string          `json:"empId,omitempty"`
	Role      models.UserRole `json:"role"`
	Comment   string          `json:"comment"`
}

// Clone returns a deep copy that shares no memory with c.
func (c Candidate) Clone() Candidate {
	return deepcopy.Copy(c).(Candidate)
}

// LastAudit returns the most recent audit entry, if any.
func (c Candidate) LastAudit() (AuditLog, bool) {
	if len(c.StatusHistory) == 0 {
		return AuditLog{}, false
	}
	return c.StatusHistory[len(c.StatusHistory)-1], true
}

func (c Candidate) Value() (driver.Value, error) {
	valueString, err := json.Marshal(c)
	return string(valueString), err
}

func (c *Candidate) Scan(value interface{}) error {
	var body []byte
	switch v := value.(type) {
	case []byte:
		body = v
	case string:
		body = []byte(v)
	default:
		return errors.Errorf("unsupported candidate data type %T", value)
	}
	return json.Unmarshal(body, c)
}
