package candidatestore

import (
	"context"
	"smarthire-backend/lib/utils/helpers"
	dbmodels "smarthire-backend/models/db"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryInstance returns a process local store. Snapshots are deep copied
// on the way in and out.
func NewMemoryInstance() Provider {
	return &memoryImpl{
		records:     map[string]dbmodels.Candidate{},
		subscribers: map[int]func(id string){},
	}
}

type memoryImpl struct {
	mu          sync.RWMutex
	records     map[string]dbmodels.Candidate
	subscribers map[int]func(id string)
	nextSubID   int
}

func (m *memoryImpl) Create(ctx context.Context, rec dbmodels.Candidate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rec = rec.Clone()
	rec.ID = uuid.NewString()
	rec.Version = 1
	m.mu.Lock()
	m.records[rec.ID] = rec
	m.mu.Unlock()
	m.publish(rec.ID)
	return rec.ID, nil
}

func (m *memoryImpl) GetByID(ctx context.Context, id string) (*dbmodels.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	result := rec.Clone()
	return &result, nil
}

func (m *memoryImpl) List(ctx context.Context, filter Filter) ([]dbmodels.Candidate, int64, error) {
	all, err := m.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	matched := []dbmodels.Candidate{}
	for idx := len(all) - 1; idx >= 0; idx-- {
		if matches(all[idx], filter) {
			matched = append(matched, all[idx])
		}
	}
	total := int64(len(matched))
	from := min(max(filter.Offset, 0), len(matched))
	to := len(matched)
	if filter.Limit > 0 {
		to = from + min(filter.Limit, len(matched)-from)
	}
	return matched[from:to], total, nil
}

func (m *memoryImpl) GetAll(ctx context.Context) ([]dbmodels.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	result := make([]dbmodels.Candidate, 0, len(m.records))
	for _, rec := range m.records {
		result = append(result, rec.Clone())
	}
	m.mu.RUnlock()
	sort.SliceStable(result, func(a, b int) bool {
		if result[a].CreatedAt.Equal(result[b].CreatedAt) {
			return result[a].ID < result[b].ID
		}
		return result[a].CreatedAt.Before(result[b].CreatedAt)
	})
	return result, nil
}

func (m *memoryImpl) Put(ctx context.Context, rec dbmodels.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	stored, ok := m.records[rec.ID]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	if stored.Version != rec.Version-1 {
		m.mu.Unlock()
		return ErrStaleVersion
	}
	m.records[rec.ID] = rec.Clone()
	m.mu.Unlock()
	m.publish(rec.ID)
	return nil
}

func (m *memoryImpl) Subscribe(onChange func(id string)) (func(), error) {
	m.mu.Lock()
	subID := m.nextSubID
	m.nextSubID++
	m.subscribers[subID] = onChange
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subscribers, subID)
		m.mu.Unlock()
	}, nil
}

func (m *memoryImpl) publish(id string) {
	m.mu.RLock()
	callbacks := make([]func(id string), 0, len(m.subscribers))
	for _, callback := range m.subscribers {
		callbacks = append(callbacks, callback)
	}
	m.mu.RUnlock()
	for _, callback := range callbacks {
		callback(id)
	}
}

func matches(rec dbmodels.Candidate, filter Filter) bool {
	if filter.Status != "" && rec.Status != filter.Status {
		return false
	}
	if filter.Department != "" && rec.Department != filter.Department {
		return false
	}
	if filter.Search != "" &&
		!helpers.ContainsFold(rec.FullName, filter.Search) &&
		!helpers.ContainsFold(rec.Vacancy, filter.Search) &&
		!helpers.ContainsFold(rec.Contact.Phone, filter.Search) {
		return false
	}
	return true
}
