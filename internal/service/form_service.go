package service

import (
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/domain"
	"github.com/primowater/deliveryform/internal/metrics"
	"github.com/primowater/deliveryform/internal/pricing"
	"github.com/primowater/deliveryform/internal/session"
)

// QuoteRequest is a stateless pricing request
type QuoteRequest struct {
	WaterType     string `json:"waterType"`
	WaterQty      int    `json:"waterQty" binding:"min=0"`
	DispenserType string `json:"dispenserType"`
	DispenserQty  int    `json:"dispenserQty" binding:"min=0"`
}

// QuoteResponse is the priced summary and its display lines
type QuoteResponse struct {
	Summary       pricing.OrderSummary `json:"summary"`
	WaterLine     string               `json:"water_line"`
	DispenserLine string               `json:"dispenser_line"`
	DeliveryFee   string               `json:"delivery_fee"`
	Lines         pricing.SummaryLines `json:"lines"`
}

type formService struct {
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewFormService creates a new form service
func NewFormService(m *metrics.Metrics, logger *zap.Logger) *formService {
	return &formService{
		metrics: m,
		logger:  logger,
	}
}

// ApplyField applies one edited input to the session's form state
func (s *formService) ApplyField(sess *session.Session, field, value string) (domain.FormView, error) {
	view, err := sess.Update(func(state *domain.FormState) error {
		return state.ApplyField(field, value)
	})
	if err != nil {
		s.logger.Debug("Rejected form field update",
			zap.String("session_id", sess.ID.String()),
			zap.String("field", field),
			zap.Error(err),
		)
		return view, err
	}

	s.metrics.RecordFieldUpdate(field)
	return view, nil
}

// Quote prices an order without touching any session
func (s *formService) Quote(req QuoteRequest) QuoteResponse {
	summary := pricing.Calculate(
		pricing.Product(req.WaterType),
		req.WaterQty,
		pricing.Product(req.DispenserType),
		req.DispenserQty,
	)
	s.metrics.RecordQuote()

	return QuoteResponse{
		Summary:       summary,
		WaterLine:     pricing.FormatUSD(summary.WaterLine()),
		DispenserLine: pricing.FormatUSD(summary.DispenserLine()),
		DeliveryFee:   pricing.FormatUSD(pricing.DeliveryFee),
		Lines:         summary.Lines(),
	}
}

// CheckMembership validates a membership number as it is typed
func (s *formService) CheckMembership(raw string) error {
	err := domain.ValidateMembership(raw)
	s.metrics.RecordMembershipCheck(err == nil)
	return err
}
