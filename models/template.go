package models

// NotificationTemplateData is the data passed to candidate message templates.
type NotificationTemplateData struct {
	CandidateName   string
	Vacancy         string
	PositionOffered string
	Department      string
	InterviewDate   string
	InterviewTime   string
	InterviewType   string
	Interviewer     string
	JoiningDate     string
	Salary          string
	Reason          string
	CompanyName     string
}
