package handlers

import (
	"context"

	"github.com/primowater/deliveryform/internal/domain"
	"github.com/primowater/deliveryform/internal/service"
	"github.com/primowater/deliveryform/internal/session"
)

// FormService is the form-state and pricing surface the handlers need
type FormService interface {
	ApplyField(sess *session.Session, field, value string) (domain.FormView, error)
	Quote(req service.QuoteRequest) service.QuoteResponse
	CheckMembership(raw string) error
}

// SubmissionService forwards completed forms
type SubmissionService interface {
	Submit(ctx context.Context, sess *session.Session, form domain.OrderForm) (domain.FormView, error)
}
