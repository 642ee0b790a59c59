package models

type UserRole string

const (
	AdminRole        UserRole = "Admin"
	HRRole           UserRole = "HR"
	HODRole          UserRole = "HOD"
	SchedulerRole    UserRole = "Scheduler"
	SurveillanceRole UserRole = "Surveillance"
	CandidateRole    UserRole = "Candidate"
)

var roleHumanName = map[UserRole]string{
	AdminRole:        "Administrator",
	HRRole:           "HR",
	HODRole:          "Head of Department",
	SchedulerRole:    "Scheduler",
	SurveillanceRole: "Surveillance",
	CandidateRole:    "Candidate",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

func (r UserRole) IsOperator() bool {
	return r.IsValid() && r != CandidateRole
}

const SystemUser = "System"

// Actor is the identity performing an operation. It is passed explicitly to
// every lifecycle call.
type Actor struct {
	ID   string
	Name string
	Role UserRole
}
