package initializers

import (
	"context"
	"smarthire-backend/config"
	"smarthire-backend/db"
	"smarthire-backend/fiberlog"
	"smarthire-backend/lib/analytics"
	"smarthire-backend/lib/applicant"
	candidatestore "smarthire-backend/lib/applicant/store"
	candidatenotify "smarthire-backend/lib/candidate-notify"
	xlsexport "smarthire-backend/lib/export/xls"
	interviewreminder "smarthire-backend/lib/interview-reminder"
	"smarthire-backend/lib/rbac"
	"smarthire-backend/lib/smtp"
	connectionhub "smarthire-backend/lib/ws/hub/connection-hub"
	"time"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	store := InitStore()
	InitS3(ctx)
	InitSmtp()
	rbac.NewHandler()
	connectionhub.Init()

	var notifier candidatenotify.Provider
	if *config.Conf.Notification.Enabled {
		notifier = candidatenotify.NewInstance(smtp.Instance, config.Conf.Notification.Sender, config.Conf.App.CompanyName)
		applicant.NewHandler(store, notifier)
	} else {
		applicant.NewHandler(store, nil)
	}
	xlsexport.NewHandler()
	analytics.NewHandler(store)
	initFeed(ctx)
	go initWorkers(ctx, store, notifier)
}

// InitStore opens the candidate store selected by Storage.Backend.
func InitStore() candidatestore.Provider {
	switch config.Conf.Storage.Backend {
	case config.StorageMemory:
		log.Warn("using in-memory candidate storage, data is lost on restart")
		return candidatestore.NewMemoryInstance()
	case config.StoragePostgres, "":
		InitDBConnection()
		return candidatestore.NewInstance(db.DB, db.ConnString)
	}
	panic("unknown storage backend " + config.Conf.Storage.Backend)
}

// initFeed forwards candidate changes to the websocket clients.
func initFeed(ctx context.Context) {
	unsubscribe, err := connectionhub.Instance.WatchCandidates(applicant.Instance.Subscribe)
	if err != nil {
		log.WithError(err).Error("error subscribing to candidate changes, live updates are disabled")
		return
	}
	go func() {
		<-ctx.Done()
		unsubscribe()
	}()
}

func initWorkers(ctx context.Context, store candidatestore.Provider, notifier candidatenotify.Provider) {
	if notifier == nil {
		return
	}
	if makeTimeGap(ctx) {
		interviewreminder.StartWorker(ctx, store, notifier, time.Duration(config.Conf.Notification.ReminderIntervalInMin)*time.Minute)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
