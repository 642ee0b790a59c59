// Package interviewreminder reminds candidates of their interview the day before.
package interviewreminder

import (
	"context"
	candidatestore "smarthire-backend/lib/applicant/store"
	candidatenotify "smarthire-backend/lib/candidate-notify"
	messagetemplate "smarthire-backend/lib/message-template"
	baseworker "smarthire-backend/lib/utils/base-worker"
	"smarthire-backend/lib/utils/helpers"
	"smarthire-backend/models"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

func StartWorker(ctx context.Context, store candidatestore.Provider, notifier candidatenotify.Provider, runInterval time.Duration) {
	i := newInstance(store, notifier, runInterval, time.Now)
	go i.Run(ctx, i.handle)
}

func newInstance(store candidatestore.Provider, notifier candidatenotify.Provider, runInterval time.Duration, now func() time.Time) *impl {
	return &impl{
		BaseImpl: *baseworker.NewInstance("InterviewReminderWorker", 30*time.Second, runInterval),
		store:    store,
		notifier: notifier,
		now:      now,
		sent:     map[string]bool{},
	}
}

type impl struct {
	baseworker.BaseImpl
	store    candidatestore.Provider
	notifier candidatenotify.Provider
	now      func() time.Time

	mu   sync.Mutex
	sent map[string]bool // interview ids already reminded
}

func (i *impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.GetAll(ctx)
	if err != nil {
		logger.WithError(err).Error("error getting candidates for interview reminders")
		return
	}
	tomorrow := i.now().AddDate(0, 0, 1).Format(dateLayout)
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if rec.Status != models.StatusInterviewScheduled || rec.Interview == nil || rec.Interview.Date != tomorrow {
			continue
		}
		if !i.markSent(rec.Interview.ID) {
			continue
		}
		if err = i.notifier.Send(rec, messagetemplate.InterviewReminderMsg); err != nil {
			logger.
				WithError(err).
				WithField("candidate_id", rec.ID).
				Error("error sending interview reminder")
			i.unmarkSent(rec.Interview.ID)
		}
	}
}

func (i *impl) markSent(interviewID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.sent[interviewID] {
		return false
	}
	i.sent[interviewID] = true
	return true
}

func (i *impl) unmarkSent(interviewID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.sent, interviewID)
}
