package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats an amount like "$28.97"
func FormatUSD(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// SummaryLines is the order summary block as the page renders it
type SummaryLines struct {
	Water     string `json:"water"`
	Dispenser string `json:"dispenser"`
	Total     string `json:"total"`
}

// Lines renders the summary for display
func (s OrderSummary) Lines() SummaryLines {
	water := string(s.WaterType)
	if water == "" {
		water = "Not Selected"
	}
	dispenser := string(s.DispenserType)
	if dispenser == "" {
		dispenser = string(NoDispenser)
	}
	return SummaryLines{
		Water:     fmt.Sprintf("Water: %d x %s", s.WaterQty, water),
		Dispenser: fmt.Sprintf("Dispenser: %d x %s", s.DispenserQty, dispenser),
		Total:     fmt.Sprintf("Total (incl. %s delivery): %s", FormatUSD(DeliveryFee), FormatUSD(s.Total)),
	}
}

// ParseQuantity reads the leading integer of a quantity input.
// Anything unparsable is zero and negatives clamp to zero.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	for i, r := range s {
		if i == 0 && (r == '-' || r == '+') {
			end = i + 1
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
