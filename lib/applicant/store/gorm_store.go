package candidatestore

import (
	"context"
	"io"
	"smarthire-backend/models"
	dbmodels "smarthire-backend/models/db"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const notifyChannel = "candidate_changed"

func NewInstance(DB *gorm.DB, dsn string) Provider {
	return &impl{
		db:  DB,
		dsn: dsn,
	}
}

type impl struct {
	db  *gorm.DB
	dsn string
}

func (i impl) Create(ctx context.Context, rec dbmodels.Candidate) (string, error) {
	rec.ID = uuid.NewString()
	rec.Version = 1
	row := dbmodels.NewCandidateRow(rec)
	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return notify(tx, rec.ID)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.Candidate, error) {
	row := dbmodels.CandidateRow{}
	err := i.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fromRow(row), nil
}

func (i impl) List(ctx context.Context, filter Filter) ([]dbmodels.Candidate, int64, error) {
	var rowCount int64
	err := i.filter(ctx, filter).
		Model(&dbmodels.CandidateRow{}).
		Count(&rowCount).
		Error
	if err != nil {
		return nil, 0, err
	}
	tx := i.filter(ctx, filter).
		Order("created_at desc").
		Offset(filter.Offset)
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	rows := []dbmodels.CandidateRow{}
	if err = tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return fromRows(rows), rowCount, nil
}

func (i impl) GetAll(ctx context.Context) ([]dbmodels.Candidate, error) {
	rows := []dbmodels.CandidateRow{}
	err := i.db.WithContext(ctx).
		Order("created_at").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (i impl) Put(ctx context.Context, rec dbmodels.Candidate) error {
	return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := dbmodels.NewCandidateRow(rec)
		result := tx.Model(&dbmodels.CandidateRow{}).
			Where("id = ?", rec.ID).
			Where("version = ?", rec.Version-1).
			Updates(map[string]interface{}{
				"version":    row.Version,
				"status":     row.Status,
				"full_name":  row.FullName,
				"vacancy":    row.Vacancy,
				"department": row.Department,
				"data":       row.Data,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&dbmodels.CandidateRow{}).Where("id = ?", rec.ID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return ErrNotFound
			}
			return ErrStaleVersion
		}
		return notify(tx, rec.ID)
	})
}

// Subscribe listens on the notification channel filled by Create and Put, so
// changes made by other service instances are delivered as well.
func (i impl) Subscribe(onChange func(id string)) (func(), error) {
	logger := log.WithField("channel", notifyChannel)
	listener := pq.NewListener(i.dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.WithError(err).Warn("candidate listener event")
		}
	})
	if err := listener.Listen(notifyChannel); err != nil {
		listener.Close()
		return nil, errors.Wrap(err, "subscribe to candidate changes")
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				// nil after a reconnect
				if n == nil {
					continue
				}
				onChange(n.Extra)
			case <-time.After(90 * time.Second):
				go listener.Ping()
			}
		}
	}()
	return stopListener(done, listener, logger), nil
}

// stopListener returns an unsubscribe func that is safe to call repeatedly.
func stopListener(done chan struct{}, listener io.Closer, logger *log.Entry) func() {
	return sync.OnceFunc(func() {
		close(done)
		if err := listener.Close(); err != nil {
			logger.WithError(err).Warn("close candidate listener")
		}
	})
}

func (i impl) filter(ctx context.Context, filter Filter) *gorm.DB {
	tx := i.db.WithContext(ctx)
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("full_name ILIKE ? OR vacancy ILIKE ? OR data->'contact'->>'phone' ILIKE ?", pattern, pattern, pattern)
	}
	return tx
}

func notify(tx *gorm.DB, id string) error {
	return tx.Exec("SELECT pg_notify(?, ?)", notifyChannel, id).Error
}

func fromRow(row dbmodels.CandidateRow) *dbmodels.Candidate {
	rec := row.Data
	rec.ID = row.ID
	rec.Version = row.Version
	rec.Status = models.ApplicationStatus(row.Status)
	return &rec
}

func fromRows(rows []dbmodels.CandidateRow) []dbmodels.Candidate {
	result := make([]dbmodels.Candidate, 0, len(rows))
	for _, row := range rows {
		result = append(result, *fromRow(row))
	}
	return result
}
