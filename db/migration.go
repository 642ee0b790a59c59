package db

import (
	dbmodels "smarthire-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.CandidateRow{}); err != nil {
		return errors.Wrap(err, "error migrating CandidateRow")
	}
	log.Info("migrations done")
	return nil
}
