package domain

import (
	"net/url"
	"strconv"

	"github.com/primowater/deliveryform/internal/pricing"
	"github.com/primowater/deliveryform/pkg/errors"
)

// OrderForm is the complete field set posted by the order page
type OrderForm struct {
	Costco     string `form:"costco" binding:"required,costco"`
	FirstName  string `form:"firstName" binding:"required"`
	LastName   string `form:"lastName" binding:"required"`
	DayPhone   string `form:"dayPhone" binding:"required"`
	NightPhone string `form:"nightPhone"`
	Email      string `form:"email" binding:"required,email"`

	Commercial   Toggle `form:"commercial"`
	BusinessName string `form:"businessName"`

	Address string `form:"address" binding:"required"`
	City    string `form:"city" binding:"required"`
	State   string `form:"state" binding:"required"`
	Zip     string `form:"zip" binding:"required"`

	BillingAddress Toggle `form:"billingAddress"`
	Billing        string `form:"billing"`
	BillingCity    string `form:"billingCity"`
	BillingState   string `form:"billingState"`
	BillingZip     string `form:"billingZip"`

	WaterType         pricing.Product `form:"waterType" binding:"required"`
	WaterQuantity     int             `form:"waterQuantity" binding:"required,min=2"`
	DispenserType     pricing.Product `form:"dispenserType" binding:"required"`
	DispenserQuantity int             `form:"dispenserQuantity" binding:"min=0"`

	Delivery      DeliveryFrequency `form:"delivery" binding:"required"`
	DeliveryNotes string            `form:"deliveryNotes"`
}

// MinWaterQuantity is the smallest water order accepted
const MinWaterQuantity = 2

// Validate checks the rules the binding tags cannot express
func (f *OrderForm) Validate() error {
	if err := ValidateMembership(f.Costco); err != nil {
		return err
	}
	if !f.WaterType.IsWater() {
		return &errors.ErrValidation{Field: "waterType", Message: "Please select a water type."}
	}
	if f.WaterQuantity < MinWaterQuantity {
		return &errors.ErrValidation{Field: "waterQuantity", Message: "Water quantity must be at least 2."}
	}
	if !f.DispenserType.IsDispenserSelection() {
		return &errors.ErrValidation{Field: "dispenserType", Message: "Please select a dispenser type."}
	}
	if f.DispenserQuantity < 0 {
		return &errors.ErrValidation{Field: "dispenserQuantity", Message: "Dispenser quantity cannot be negative."}
	}
	if !f.Delivery.IsValid() {
		return &errors.ErrValidation{Field: "delivery", Message: "Please select a delivery frequency."}
	}
	return nil
}

// Summary prices the order the form describes
func (f *OrderForm) Summary() pricing.OrderSummary {
	return pricing.Calculate(f.WaterType, f.WaterQuantity, f.DispenserType, f.DispenserQuantity)
}

// Values returns the raw fields in native form encoding.
// Business and billing fields are only sent when their selector is Yes.
func (f *OrderForm) Values() url.Values {
	v := url.Values{}
	v.Set("costco", f.Costco)
	v.Set("firstName", f.FirstName)
	v.Set("lastName", f.LastName)
	v.Set("dayPhone", f.DayPhone)
	v.Set("nightPhone", f.NightPhone)
	v.Set("email", f.Email)

	commercial := f.Commercial
	if commercial == "" {
		commercial = ToggleNo
	}
	v.Set("commercial", string(commercial))
	if commercial.On() {
		v.Set("businessName", f.BusinessName)
	}

	v.Set("address", f.Address)
	v.Set("city", f.City)
	v.Set("state", f.State)
	v.Set("zip", f.Zip)

	billing := f.BillingAddress
	if billing == "" {
		billing = ToggleNo
	}
	v.Set("billingAddress", string(billing))
	if billing.On() {
		v.Set("billing", f.Billing)
		v.Set("billingCity", f.BillingCity)
		v.Set("billingState", f.BillingState)
		v.Set("billingZip", f.BillingZip)
	}

	v.Set("waterType", string(f.WaterType))
	v.Set("waterQuantity", strconv.Itoa(f.WaterQuantity))
	v.Set("dispenserType", string(f.DispenserType))
	v.Set("dispenserQuantity", strconv.Itoa(f.DispenserQuantity))
	v.Set("delivery", string(f.Delivery))
	v.Set("deliveryNotes", f.DeliveryNotes)
	return v
}
