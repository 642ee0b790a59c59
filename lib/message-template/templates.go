package messagetemplate

import (
	"bytes"
	"embed"
	"smarthire-backend/models"
	dbmodels "smarthire-backend/models/db"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

type MessageKind string

const (
	InterviewScheduledMsg MessageKind = "interview_scheduled"
	InterviewReminderMsg  MessageKind = "interview_reminder"
	OfferAcceptedMsg      MessageKind = "offer_accepted"
	JoiningScheduledMsg   MessageKind = "joining_scheduled"
	JoinedMsg             MessageKind = "joined"
	RejectedMsg           MessageKind = "rejected"
)

var titles = map[MessageKind]string{
	InterviewScheduledMsg: "Interview invitation",
	InterviewReminderMsg:  "Interview reminder",
	OfferAcceptedMsg:      "Offer confirmation",
	JoiningScheduledMsg:   "Joining details",
	JoinedMsg:             "Welcome aboard",
	RejectedMsg:           "Your application",
}

//go:embed static/*.txt
var staticFiles embed.FS

// Build renders the subject and plain text body of a candidate message.
func Build(kind MessageKind, data models.NotificationTemplateData) (subject, body string, err error) {
	title, ok := titles[kind]
	if !ok {
		return "", "", errors.Errorf("unknown message kind %v", kind)
	}
	tpl, err := getTemplate("static/" + string(kind) + ".txt")
	if err != nil {
		return "", "", err
	}
	buf := new(bytes.Buffer)
	if err = tpl.Execute(buf, data); err != nil {
		return "", "", errors.Wrapf(err, "error rendering template %v", kind)
	}
	if data.CompanyName != "" {
		title = data.CompanyName + " - " + title
	}
	return title, buf.String(), nil
}

// DataFor fills the template data from the candidate snapshot.
func DataFor(rec dbmodels.Candidate, companyName string) models.NotificationTemplateData {
	data := models.NotificationTemplateData{
		CandidateName:   strings.TrimSpace(rec.FullName),
		Vacancy:         rec.Vacancy,
		PositionOffered: rec.PositionOffered,
		Department:      rec.Department,
		CompanyName:     companyName,
	}
	if rec.Interview != nil {
		data.InterviewDate = rec.Interview.Date
		data.InterviewTime = rec.Interview.Time
		data.InterviewType = string(rec.Interview.Type)
		data.Interviewer = rec.Interview.Interviewer
	}
	if rec.Offer != nil {
		data.JoiningDate = rec.Offer.JoiningDate
		data.Salary = rec.Offer.Salary
	}
	if rec.Rejection != nil {
		data.Reason = rec.Rejection.Reason
	}
	return data
}

func getTemplate(filePath string) (*template.Template, error) {
	body, err := staticFiles.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading template file %v", filePath)
	}
	tpl, err := template.New("msg_body").Parse(string(body))
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing template file %v", filePath)
	}
	return tpl, nil
}
