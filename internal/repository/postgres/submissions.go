package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/domain"
	"github.com/primowater/deliveryform/pkg/errors"
)

type submissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) *submissionRepository {
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

const submissionColumns = `
	id, session_id, outcome, membership_hash, customer_email, customer_name,
	water_type, water_qty, dispenser_type, dispenser_qty, delivery,
	quoted_total, error_message, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*domain.SubmissionRecord, error) {
	var record domain.SubmissionRecord
	var errorMessage sql.NullString

	err := row.Scan(
		&record.ID,
		&record.SessionID,
		&record.Outcome,
		&record.MembershipHash,
		&record.CustomerEmail,
		&record.CustomerName,
		&record.WaterType,
		&record.WaterQty,
		&record.DispenserType,
		&record.DispenserQty,
		&record.Delivery,
		&record.QuotedTotal,
		&errorMessage,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if errorMessage.Valid {
		record.ErrorMessage = &errorMessage.String
	}
	return &record, nil
}

func (r *submissionRepository) Create(ctx context.Context, record *domain.SubmissionRecord) error {
	query := `
		INSERT INTO form_submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.SessionID,
		record.Outcome,
		record.MembershipHash,
		record.CustomerEmail,
		record.CustomerName,
		record.WaterType,
		record.WaterQty,
		record.DispenserType,
		record.DispenserQty,
		record.Delivery,
		record.QuotedTotal,
		record.ErrorMessage,
		record.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create submission record", zap.Error(err))
		return err
	}

	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error) {
	query := `SELECT ` + submissionColumns + ` FROM form_submissions WHERE id = $1`

	record, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "submission", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get submission by ID", zap.Error(err))
		return nil, err
	}

	return record, nil
}

func (r *submissionRepository) List(ctx context.Context, limit, offset int) ([]*domain.SubmissionRecord, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM form_submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query submissions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.SubmissionRecord, 0, limit)
	for rows.Next() {
		record, err := scanSubmission(rows)
		if err != nil {
			r.logger.Error("Failed to scan submission", zap.Error(err))
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
