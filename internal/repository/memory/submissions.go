package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/primowater/deliveryform/internal/domain"
	"github.com/primowater/deliveryform/internal/repository"
	"github.com/primowater/deliveryform/pkg/errors"
)

// SubmissionRepository keeps submission records in process memory.
// It is used when no database is configured.
type SubmissionRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]domain.SubmissionRecord
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{records: make(map[uuid.UUID]domain.SubmissionRecord)}
}

// NewRepositories creates all in-memory repositories
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Submission: NewSubmissionRepository(),
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, record *domain.SubmissionRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "submission", ID: id.String()}
	}
	return &record, nil
}

// List returns records newest first
func (r *SubmissionRepository) List(ctx context.Context, limit, offset int) ([]*domain.SubmissionRecord, error) {
	r.mu.RLock()
	all := make([]*domain.SubmissionRecord, 0, len(r.records))
	for _, record := range r.records {
		record := record
		all = append(all, &record)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*domain.SubmissionRecord{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
