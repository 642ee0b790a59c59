// Package candidatenotify e-mails candidates when their application moves.
package candidatenotify

import (
	"context"
	"smarthire-backend/lib/lifecycle"
	messagetemplate "smarthire-backend/lib/message-template"
	"smarthire-backend/lib/smtp"
	dbmodels "smarthire-backend/models/db"

	log "github.com/sirupsen/logrus"
)

var transitionMessages = map[lifecycle.Transition]messagetemplate.MessageKind{
	lifecycle.ScheduleInterview:  messagetemplate.InterviewScheduledMsg,
	lifecycle.InterviewReject:    messagetemplate.RejectedMsg,
	lifecycle.SurveillanceReject: messagetemplate.RejectedMsg,
	lifecycle.OfferAccepted:      messagetemplate.OfferAcceptedMsg,
	lifecycle.JoiningScheduled:   messagetemplate.JoiningScheduledMsg,
	lifecycle.MarkJoined:         messagetemplate.JoinedMsg,
}

type Provider interface {
	CandidateTransitioned(ctx context.Context, rec dbmodels.Candidate, transition lifecycle.Transition)
	Send(rec dbmodels.Candidate, kind messagetemplate.MessageKind) error
}

func NewInstance(mail smtp.Provider, sender, companyName string) Provider {
	return impl{
		mail:        mail,
		sender:      sender,
		companyName: companyName,
	}
}

type impl struct {
	mail        smtp.Provider
	sender      string
	companyName string
}

// CandidateTransitioned sends the message bound to the transition, if any.
// Failures are logged and never undo the transition.
func (i impl) CandidateTransitioned(ctx context.Context, rec dbmodels.Candidate, transition lifecycle.Transition) {
	kind, ok := transitionMessages[transition]
	if !ok {
		return
	}
	if err := i.Send(rec, kind); err != nil {
		log.WithError(err).
			WithField("candidate_id", rec.ID).
			WithField("transition", transition).
			Error("error notifying candidate")
	}
}

func (i impl) Send(rec dbmodels.Candidate, kind messagetemplate.MessageKind) error {
	logger := log.WithField("candidate_id", rec.ID).WithField("message", kind)
	if i.mail == nil || !i.mail.IsConfigured() {
		logger.Debug("smtp client is not configured, message skipped")
		return nil
	}
	if rec.Contact.Email == "" {
		logger.Warn("candidate has no email")
		return nil
	}
	subject, body, err := messagetemplate.Build(kind, messagetemplate.DataFor(rec, i.companyName))
	if err != nil {
		return err
	}
	return i.mail.SendEMail(i.sender, rec.Contact.Email, body, subject)
}
