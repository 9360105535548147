package domain

// SubmissionState represents where a form is in the submission flow
type SubmissionState string

const (
	SubmissionStateIdle       SubmissionState = "IDLE"
	SubmissionStateSubmitting SubmissionState = "SUBMITTING"
	SubmissionStateConfirmed  SubmissionState = "CONFIRMED"
	SubmissionStateFailed     SubmissionState = "FAILED"
)

// IsValid checks if the submission state is valid
func (s SubmissionState) IsValid() bool {
	switch s {
	case SubmissionStateIdle,
		SubmissionStateSubmitting,
		SubmissionStateConfirmed,
		SubmissionStateFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a state transition is valid
func (s SubmissionState) CanTransitionTo(newState SubmissionState) bool {
	switch s {
	case SubmissionStateIdle:
		return newState == SubmissionStateSubmitting
	case SubmissionStateSubmitting:
		return newState == SubmissionStateConfirmed ||
			newState == SubmissionStateFailed
	case SubmissionStateFailed:
		return newState == SubmissionStateSubmitting // resubmission re-runs the flow
	case SubmissionStateConfirmed:
		return false // Terminal state
	default:
		return false
	}
}

// Toggle is the value of a Yes/No selector on the form
type Toggle string

const (
	ToggleNo  Toggle = "No"
	ToggleYes Toggle = "Yes"
)

// On reports whether the selector is set to Yes
func (t Toggle) On() bool {
	return t == ToggleYes
}

// DeliveryFrequency is how often bottles are delivered
type DeliveryFrequency string

const (
	DeliveryEvery2Weeks DeliveryFrequency = "2 weeks"
	DeliveryEvery4Weeks DeliveryFrequency = "4 weeks"
	DeliveryEvery8Weeks DeliveryFrequency = "8 weeks"
)

// IsValid checks if the delivery frequency is one of the offered schedules
func (d DeliveryFrequency) IsValid() bool {
	switch d {
	case DeliveryEvery2Weeks, DeliveryEvery4Weeks, DeliveryEvery8Weeks:
		return true
	default:
		return false
	}
}
