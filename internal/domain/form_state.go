package domain

import (
	"fmt"

	"github.com/primowater/deliveryform/internal/pricing"
	"github.com/primowater/deliveryform/pkg/errors"
)

// Fields on the page that change form state without being submitted as pricing input
const (
	FieldCommercial     = "commercial"
	FieldBillingAddress = "billingAddress"
)

// ErrUnknownField is returned by ApplyField for names that do not affect form state
type ErrUnknownField struct {
	Field string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown form field: %q", e.Field)
}

// FormState is what the page holds between edits.
// Visibility flags are derived from it, never stored.
type FormState struct {
	Summary        pricing.OrderSummary
	Commercial     Toggle
	BillingAddress Toggle
	Submission     SubmissionState
	LastError      string
}

// NewFormState returns the state of a freshly loaded form
func NewFormState() *FormState {
	return &FormState{
		Summary:        pricing.Empty(),
		Commercial:     ToggleNo,
		BillingAddress: ToggleNo,
		Submission:     SubmissionStateIdle,
	}
}

// ApplyField updates state for a single edited input
func (s *FormState) ApplyField(name, value string) error {
	var delta pricing.FieldDelta
	switch pricing.Field(name) {
	case pricing.FieldWaterType:
		delta = pricing.WaterTypeChanged(pricing.Product(value))
	case pricing.FieldWaterQty:
		delta = pricing.WaterQtyChanged(pricing.ParseQuantity(value))
	case pricing.FieldDispenserType:
		delta = pricing.DispenserTypeChanged(pricing.Product(value))
	case pricing.FieldDispenserQty:
		delta = pricing.DispenserQtyChanged(pricing.ParseQuantity(value))
	default:
		switch name {
		case FieldCommercial:
			s.Commercial = Toggle(value)
			return nil
		case FieldBillingAddress:
			s.BillingAddress = Toggle(value)
			return nil
		}
		return &ErrUnknownField{Field: name}
	}

	next, err := pricing.Apply(s.Summary, delta)
	if err != nil {
		return err
	}
	s.Summary = next
	return nil
}

// Transition moves the submission flow to a new state
func (s *FormState) Transition(to SubmissionState) error {
	if !s.Submission.CanTransitionTo(to) {
		return &errors.ErrInvalidStateTransition{From: string(s.Submission), To: string(to)}
	}
	s.Submission = to
	if to != SubmissionStateFailed {
		s.LastError = ""
	}
	return nil
}

// Fail moves a submitting form to Failed and records the message shown to the user
func (s *FormState) Fail(message string) error {
	if err := s.Transition(SubmissionStateFailed); err != nil {
		return err
	}
	s.LastError = message
	return nil
}

// FormView is the form state as the page renders it
type FormView struct {
	Summary          pricing.OrderSummary `json:"summary"`
	Lines            pricing.SummaryLines `json:"lines"`
	State            SubmissionState      `json:"state"`
	ShowBusinessName bool                 `json:"show_business_name"`
	ShowBilling      bool                 `json:"show_billing_address"`
	Loading          bool                 `json:"loading"`
	ShowConfirmation bool                 `json:"show_confirmation"`
	ShowError        bool                 `json:"show_error"`
	Error            string               `json:"error,omitempty"`
}

// View derives the render flags from the current state
func (s *FormState) View() FormView {
	v := FormView{
		Summary:          s.Summary,
		Lines:            s.Summary.Lines(),
		State:            s.Submission,
		ShowBusinessName: s.Commercial.On(),
		ShowBilling:      s.BillingAddress.On(),
		Loading:          s.Submission == SubmissionStateSubmitting,
		ShowConfirmation: s.Submission == SubmissionStateConfirmed,
		ShowError:        s.Submission == SubmissionStateFailed,
	}
	if v.ShowError {
		v.Error = s.LastError
	}
	return v
}
