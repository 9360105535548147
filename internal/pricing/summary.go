package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderSummary is the derived pricing snapshot shown before submission.
// Total is always Calculate's result for the other four fields.
type OrderSummary struct {
	WaterType     Product         `json:"water_type"`
	WaterQty      int             `json:"water_qty"`
	DispenserType Product         `json:"dispenser_type"`
	DispenserQty  int             `json:"dispenser_qty"`
	Total         decimal.Decimal `json:"total"`
}

// Field names one of the summary inputs
type Field string

const (
	FieldWaterType     Field = "waterType"
	FieldWaterQty      Field = "waterQuantity"
	FieldDispenserType Field = "dispenserType"
	FieldDispenserQty  Field = "dispenserQuantity"
)

// IsValid checks if the field is a pricing input
func (f Field) IsValid() bool {
	switch f {
	case FieldWaterType, FieldWaterQty, FieldDispenserType, FieldDispenserQty:
		return true
	default:
		return false
	}
}

// FieldDelta is a change to exactly one pricing input
type FieldDelta struct {
	Field    Field
	Product  Product
	Quantity int
}

// WaterTypeChanged, WaterQtyChanged, DispenserTypeChanged and DispenserQtyChanged build deltas
func WaterTypeChanged(p Product) FieldDelta { return FieldDelta{Field: FieldWaterType, Product: p} }

func WaterQtyChanged(n int) FieldDelta { return FieldDelta{Field: FieldWaterQty, Quantity: n} }

func DispenserTypeChanged(p Product) FieldDelta {
	return FieldDelta{Field: FieldDispenserType, Product: p}
}

func DispenserQtyChanged(n int) FieldDelta { return FieldDelta{Field: FieldDispenserQty, Quantity: n} }

// Empty returns the summary shown when the form first loads
func Empty() OrderSummary {
	return OrderSummary{Total: decimal.Zero}
}

// Calculate prices an order from the static catalog
func Calculate(waterType Product, waterQty int, dispenserType Product, dispenserQty int) OrderSummary {
	waterTotal := decimal.Zero
	if waterType != "" {
		waterTotal = UnitPrice(waterType).Mul(decimal.NewFromInt(int64(waterQty)))
	}

	dispenserTotal := decimal.Zero
	if dispenserType.IsBillableDispenser() {
		dispenserTotal = UnitPrice(dispenserType).Mul(decimal.NewFromInt(int64(dispenserQty)))
	}

	return OrderSummary{
		WaterType:     waterType,
		WaterQty:      waterQty,
		DispenserType: dispenserType,
		DispenserQty:  dispenserQty,
		Total:         waterTotal.Add(dispenserTotal).Add(DeliveryFee),
	}
}

// Apply returns a new summary with one field replaced and the total recomputed
func Apply(prev OrderSummary, delta FieldDelta) (OrderSummary, error) {
	next := prev
	switch delta.Field {
	case FieldWaterType:
		next.WaterType = delta.Product
	case FieldWaterQty:
		next.WaterQty = clampQty(delta.Quantity)
	case FieldDispenserType:
		next.DispenserType = delta.Product
	case FieldDispenserQty:
		next.DispenserQty = clampQty(delta.Quantity)
	default:
		return prev, fmt.Errorf("unknown pricing field: %q", delta.Field)
	}
	return Calculate(next.WaterType, next.WaterQty, next.DispenserType, next.DispenserQty), nil
}

// WaterLine and DispenserLine return the per-line amounts for display
func (s OrderSummary) WaterLine() decimal.Decimal {
	if s.WaterType == "" {
		return decimal.Zero
	}
	return UnitPrice(s.WaterType).Mul(decimal.NewFromInt(int64(s.WaterQty)))
}

func (s OrderSummary) DispenserLine() decimal.Decimal {
	if !s.DispenserType.IsBillableDispenser() {
		return decimal.Zero
	}
	return UnitPrice(s.DispenserType).Mul(decimal.NewFromInt(int64(s.DispenserQty)))
}

func clampQty(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
