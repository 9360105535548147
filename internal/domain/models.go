package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmissionOutcome is the result of forwarding a form to the endpoint
type SubmissionOutcome string

const (
	SubmissionOutcomeConfirmed SubmissionOutcome = "confirmed"
	SubmissionOutcomeFailed    SubmissionOutcome = "failed"
)

// SubmissionRecord is an audit entry for one submission attempt
type SubmissionRecord struct {
	ID             uuid.UUID         `json:"id"`
	SessionID      uuid.UUID         `json:"session_id"`
	Outcome        SubmissionOutcome `json:"outcome"`
	MembershipHash string            `json:"-"` // bcrypt, the raw number is never stored
	CustomerEmail  string            `json:"customer_email"`
	CustomerName   string            `json:"customer_name"`
	WaterType      string            `json:"water_type"`
	WaterQty       int               `json:"water_qty"`
	DispenserType  string            `json:"dispenser_type"`
	DispenserQty   int               `json:"dispenser_qty"`
	Delivery       string            `json:"delivery"`
	QuotedTotal    decimal.Decimal   `json:"quoted_total"`
	ErrorMessage   *string           `json:"error_message,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
