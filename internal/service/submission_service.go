package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/primowater/deliveryform/internal/domain"
	"github.com/primowater/deliveryform/internal/formspree"
	"github.com/primowater/deliveryform/internal/metrics"
	"github.com/primowater/deliveryform/internal/repository"
	"github.com/primowater/deliveryform/internal/session"
)

// ErrSubmissionFailed wraps any failure to hand the form to the endpoint
var ErrSubmissionFailed = errors.New("submission failed")

const (
	msgUnavailable = "Our order system is temporarily unavailable. Please try again in a few minutes."
	msgGeneric     = "We couldn't submit your order. Please check your connection and try again."
)

type submissionService struct {
	submitter formspree.Submitter
	repos     *repository.Repositories
	metrics   *metrics.Metrics
	logger    *zap.Logger
	hashCost  int
	now       func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	submitter formspree.Submitter,
	repos *repository.Repositories,
	m *metrics.Metrics,
	logger *zap.Logger,
) *submissionService {
	return &submissionService{
		submitter: submitter,
		repos:     repos,
		metrics:   m,
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// Submit validates the form and forwards its raw fields to the endpoint.
// The session moves Idle/Failed -> Submitting -> Confirmed or Failed.
func (s *submissionService) Submit(
	ctx context.Context,
	sess *session.Session,
	form domain.OrderForm,
) (domain.FormView, error) {
	if err := form.Validate(); err != nil {
		return sess.View(), err
	}

	if err := sess.BeginSubmit(); err != nil {
		return sess.View(), err
	}

	// The page shows what is being submitted
	sess.Update(func(state *domain.FormState) error {
		state.Summary = form.Summary()
		state.Commercial = form.Commercial
		state.BillingAddress = form.BillingAddress
		return nil
	})

	// Once started the forward runs to completion; the HTTP client timeout bounds it
	ctx = context.WithoutCancel(ctx)

	start := s.now()
	submitErr := s.submitter.Submit(ctx, form.Values())
	elapsed := s.now().Sub(start)

	if submitErr != nil {
		s.logger.Error("Error submitting form",
			zap.String("session_id", sess.ID.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(submitErr),
		)

		message := userMessage(submitErr)
		view, err := sess.Update(func(state *domain.FormState) error {
			return state.Fail(message)
		})
		if err != nil {
			s.logger.Error("Failed to mark submission as failed", zap.Error(err))
		}

		s.metrics.RecordSubmission(string(domain.SubmissionOutcomeFailed), elapsed)
		s.record(ctx, sess, &form, domain.SubmissionOutcomeFailed, submitErr)
		return view, fmt.Errorf("%w: %v", ErrSubmissionFailed, submitErr)
	}

	view, err := sess.Update(func(state *domain.FormState) error {
		return state.Transition(domain.SubmissionStateConfirmed)
	})
	if err != nil {
		s.logger.Error("Failed to mark submission as confirmed", zap.Error(err))
	}

	s.logger.Info("Order form submitted",
		zap.String("session_id", sess.ID.String()),
		zap.String("water_type", string(form.WaterType)),
		zap.Int("water_qty", form.WaterQuantity),
		zap.String("total", form.Summary().Total.StringFixed(2)),
		zap.Duration("elapsed", elapsed),
	)
	s.metrics.RecordSubmission(string(domain.SubmissionOutcomeConfirmed), elapsed)
	s.record(ctx, sess, &form, domain.SubmissionOutcomeConfirmed, nil)
	return view, nil
}

// record writes the audit entry. Failures are logged and never surface to the customer.
func (s *submissionService) record(
	ctx context.Context,
	sess *session.Session,
	form *domain.OrderForm,
	outcome domain.SubmissionOutcome,
	submitErr error,
) {
	hash, err := bcrypt.GenerateFromPassword([]byte(domain.NormalizeMembership(form.Costco)), s.hashCost)
	if err != nil {
		s.logger.Warn("Failed to hash membership number", zap.Error(err))
		return
	}

	summary := form.Summary()
	record := &domain.SubmissionRecord{
		SessionID:      sess.ID,
		Outcome:        outcome,
		MembershipHash: string(hash),
		CustomerEmail:  form.Email,
		CustomerName:   form.FirstName + " " + form.LastName,
		WaterType:      string(form.WaterType),
		WaterQty:       form.WaterQuantity,
		DispenserType:  string(form.DispenserType),
		DispenserQty:   form.DispenserQuantity,
		Delivery:       string(form.Delivery),
		QuotedTotal:    summary.Total,
		CreatedAt:      s.now(),
	}
	if submitErr != nil {
		msg := submitErr.Error()
		record.ErrorMessage = &msg
	}

	if err := s.repos.Submission.Create(ctx, record); err != nil {
		s.logger.Warn("Failed to store submission record", zap.Error(err))
	}
}

func userMessage(err error) string {
	if errors.Is(err, formspree.ErrEndpointUnavailable) {
		return msgUnavailable
	}

	var statusErr *formspree.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode >= http.StatusInternalServerError {
			return msgUnavailable
		}
		if statusErr.Message != "" {
			return fmt.Sprintf("We couldn't submit your order: %s", statusErr.Message)
		}
	}
	return msgGeneric
}
