package candidatestore

import (
	"context"
	"smarthire-backend/models"
	dbmodels "smarthire-backend/models/db"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("candidate not found")
	ErrStaleVersion = errors.New("candidate was changed by someone else")
)

// Filter selects candidates. Empty fields match everything.
type Filter struct {
	Status     models.ApplicationStatus
	Department string
	Search     string // substring of name, phone or vacancy
	Offset     int
	Limit      int // zero means no limit
}

// Provider is the durable candidate storage. Every write stores a whole
// snapshot.
type Provider interface {
	// Create stores a new candidate under a fresh id with version 1.
	Create(ctx context.Context, rec dbmodels.Candidate) (id string, err error)
	// GetByID returns nil when the candidate does not exist.
	GetByID(ctx context.Context, id string) (*dbmodels.Candidate, error)
	List(ctx context.Context, filter Filter) ([]dbmodels.Candidate, int64, error)
	GetAll(ctx context.Context) ([]dbmodels.Candidate, error)
	// Put replaces the stored snapshot. It succeeds only if the stored version
	// is rec.Version-1, otherwise ErrStaleVersion is returned.
	Put(ctx context.Context, rec dbmodels.Candidate) error
	// Subscribe calls onChange with the id of every created or updated
	// candidate until unsubscribe is called.
	Subscribe(onChange func(id string)) (unsubscribe func(), err error)
}
