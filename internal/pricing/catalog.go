package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog label as it appears in the order form selectors
type Product string

const (
	PurifiedWater Product = "Purified Water"
	SpringWater   Product = "Spring Water"
	AlkalineWater Product = "Alkaline Water"

	HotColdDispenser Product = "HotCold Dispenser"
	CoffeeDispenser  Product = "Coffee Dispenser"

	// NoDispenser is a valid selection that is never billed
	NoDispenser Product = "None"
)

// dispenserMarker distinguishes billable dispenser labels from "None" and the empty selection
const dispenserMarker = "Dispenser"

// DeliveryFee is charged once per delivery regardless of order contents
var DeliveryFee = decimal.RequireFromString("13.99")

// CatalogEntry is one selectable option on the form
type CatalogEntry struct {
	Product   Product         `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Label     string          `json:"label"`
}

var waterEntries = []CatalogEntry{
	{Product: PurifiedWater, UnitPrice: decimal.RequireFromString("7.49"), Label: "Purified Water - $7.49/5 Gal"},
	{Product: SpringWater, UnitPrice: decimal.RequireFromString("8.49"), Label: "Spring Water - $8.49/5 Gal"},
	{Product: AlkalineWater, UnitPrice: decimal.RequireFromString("13.99"), Label: "Alkaline Water - $13.99/3 Gal"},
}

var dispenserEntries = []CatalogEntry{
	{Product: NoDispenser, UnitPrice: decimal.Zero, Label: "None - Water Only"},
	{Product: HotColdDispenser, UnitPrice: decimal.RequireFromString("5.99"), Label: "Bottom-Loading Hot & Cold Dispenser - $5.99/mo (3 mo Free)"},
	{Product: CoffeeDispenser, UnitPrice: decimal.RequireFromString("11.99"), Label: "Bottom-Loading Coffee Pod Brewer Dispenser - $11.99/mo"},
}

// prices is built once from the entries above and never mutated
var prices = func() map[Product]decimal.Decimal {
	m := make(map[Product]decimal.Decimal, len(waterEntries)+len(dispenserEntries))
	for _, e := range waterEntries {
		m[e.Product] = e.UnitPrice
	}
	for _, e := range dispenserEntries {
		if e.Product.IsBillableDispenser() {
			m[e.Product] = e.UnitPrice
		}
	}
	return m
}()

// UnitPrice returns the catalog price for a label. Unrecognized labels price at zero.
func UnitPrice(p Product) decimal.Decimal {
	if price, ok := prices[p]; ok {
		return price
	}
	return decimal.Zero
}

// IsBillableDispenser reports whether the label denotes a paid dispenser
func (p Product) IsBillableDispenser() bool {
	return strings.Contains(string(p), dispenserMarker)
}

// IsWater reports whether the label is one of the water types
func (p Product) IsWater() bool {
	for _, e := range waterEntries {
		if e.Product == p {
			return true
		}
	}
	return false
}

// IsDispenserSelection reports whether the label is a valid dispenser selector value
func (p Product) IsDispenserSelection() bool {
	for _, e := range dispenserEntries {
		if e.Product == p {
			return true
		}
	}
	return false
}

// WaterOptions returns the water selector options in display order
func WaterOptions() []CatalogEntry {
	out := make([]CatalogEntry, len(waterEntries))
	copy(out, waterEntries)
	return out
}

// DispenserOptions returns the dispenser selector options in display order
func DispenserOptions() []CatalogEntry {
	out := make([]CatalogEntry, len(dispenserEntries))
	copy(out, dispenserEntries)
	return out
}
