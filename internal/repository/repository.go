package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/primowater/deliveryform/internal/domain"
)

// SubmissionRepository stores the audit trail of submission attempts
type SubmissionRepository interface {
	Create(ctx context.Context, record *domain.SubmissionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error)
	List(ctx context.Context, limit, offset int) ([]*domain.SubmissionRecord, error)
}

// Repositories groups every repository the service uses
type Repositories struct {
	Submission SubmissionRepository
}
