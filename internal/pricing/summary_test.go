package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateExamples(t *testing.T) {
	tests := []struct {
		name          string
		waterType     Product
		waterQty      int
		dispenserType Product
		dispenserQty  int
		want          string
	}{
		{"purified no dispenser", PurifiedWater, 2, NoDispenser, 0, "28.97"},
		{"alkaline with coffee dispenser", AlkalineWater, 3, CoffeeDispenser, 1, "67.95"},
		{"spring with hot cold", SpringWater, 4, HotColdDispenser, 2, "59.93"},
		{"nothing selected still pays delivery", "", 0, "", 0, "13.99"},
		{"quantity without water type is free", "", 5, "", 0, "13.99"},
		{"none dispenser ignores quantity", PurifiedWater, 2, NoDispenser, 3, "28.97"},
		{"unknown water label prices at zero", "Sparkling Water", 2, NoDispenser, 0, "13.99"},
		{"unknown dispenser label prices at zero", PurifiedWater, 2, "Gold Dispenser", 1, "28.97"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Calculate(tt.waterType, tt.waterQty, tt.dispenserType, tt.dispenserQty)
			assert.Equal(t, tt.want, s.Total.StringFixed(2))
			assert.Equal(t, tt.waterType, s.WaterType)
			assert.Equal(t, tt.waterQty, s.WaterQty)
			assert.Equal(t, tt.dispenserType, s.DispenserType)
			assert.Equal(t, tt.dispenserQty, s.DispenserQty)
		})
	}
}

func TestCalculateTotalEqualsLineItemsPlusFee(t *testing.T) {
	for _, w := range WaterOptions() {
		for _, d := range DispenserOptions() {
			for waterQty := 2; waterQty <= 6; waterQty++ {
				for dispenserQty := 0; dispenserQty <= 3; dispenserQty++ {
					s := Calculate(w.Product, waterQty, d.Product, dispenserQty)

					want := w.UnitPrice.Mul(decimal.NewFromInt(int64(waterQty))).Add(DeliveryFee)
					if d.Product.IsBillableDispenser() {
						want = want.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(dispenserQty))))
					}
					require.True(t, want.Equal(s.Total), "%s x%d, %s x%d: want %s got %s",
						w.Product, waterQty, d.Product, dispenserQty, want, s.Total)
					require.True(t, s.WaterLine().Add(s.DispenserLine()).Add(DeliveryFee).Equal(s.Total))
				}
			}
		}
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	a := Calculate(AlkalineWater, 3, CoffeeDispenser, 1)
	b := Calculate(AlkalineWater, 3, CoffeeDispenser, 1)

	assert.True(t, a.Total.Equal(b.Total))
	assert.Equal(t, a.WaterType, b.WaterType)
	assert.Equal(t, a.DispenserQty, b.DispenserQty)
}

func TestEmpty(t *testing.T) {
	s := Empty()
	assert.Equal(t, Product(""), s.WaterType)
	assert.Equal(t, 0, s.WaterQty)
	assert.True(t, s.Total.IsZero())
}

func TestApplySequence(t *testing.T) {
	s := Empty()

	s, err := Apply(s, WaterTypeChanged(PurifiedWater))
	require.NoError(t, err)
	assert.Equal(t, "13.99", s.Total.StringFixed(2))

	s, err = Apply(s, WaterQtyChanged(2))
	require.NoError(t, err)
	assert.Equal(t, "28.97", s.Total.StringFixed(2))

	s, err = Apply(s, DispenserTypeChanged(CoffeeDispenser))
	require.NoError(t, err)
	assert.Equal(t, "28.97", s.Total.StringFixed(2))

	s, err = Apply(s, DispenserQtyChanged(1))
	require.NoError(t, err)
	assert.Equal(t, "40.96", s.Total.StringFixed(2))

	// switching water type keeps the other inputs
	s, err = Apply(s, WaterTypeChanged(AlkalineWater))
	require.NoError(t, err)
	assert.Equal(t, 2, s.WaterQty)
	assert.Equal(t, CoffeeDispenser, s.DispenserType)
	assert.Equal(t, 1, s.DispenserQty)
	assert.Equal(t, "53.96", s.Total.StringFixed(2))
}

func TestApplyMatchesCalculate(t *testing.T) {
	prev := Calculate(SpringWater, 3, HotColdDispenser, 1)

	next, err := Apply(prev, DispenserQtyChanged(2))
	require.NoError(t, err)

	want := Calculate(SpringWater, 3, HotColdDispenser, 2)
	assert.True(t, want.Total.Equal(next.Total))
	assert.Equal(t, 2, next.DispenserQty)
}

func TestApplyClampsNegativeQuantity(t *testing.T) {
	s, err := Apply(Calculate(PurifiedWater, 2, NoDispenser, 0), WaterQtyChanged(-4))
	require.NoError(t, err)
	assert.Equal(t, 0, s.WaterQty)
	assert.Equal(t, "13.99", s.Total.StringFixed(2))
}

func TestApplyUnknownFieldLeavesSummary(t *testing.T) {
	prev := Calculate(PurifiedWater, 2, NoDispenser, 0)

	next, err := Apply(prev, FieldDelta{Field: "total"})
	require.Error(t, err)
	assert.True(t, prev.Total.Equal(next.Total))
}

func TestFieldIsValid(t *testing.T) {
	assert.True(t, FieldWaterType.IsValid())
	assert.True(t, FieldDispenserQty.IsValid())
	assert.False(t, Field("email").IsValid())
}
