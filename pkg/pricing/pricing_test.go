package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, Totals{}, Compute(nil))
	assert.Equal(t, Totals{}, Compute([]Line{}))
}

func TestComputeKnownBill(t *testing.T) {
	// 2x Tea @ 20 + 3x Samosa @ 10 = 70 gross.
	lines := []Line{
		{UnitPrice: 20, Quantity: 2},
		{UnitPrice: 10, Quantity: 3},
	}
	got := Compute(lines)

	assert.InDelta(t, 70.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 70.0, got.GrandTotal, 1e-9)

	totalTax := 70.0 - 70.0/1.05
	assert.InDelta(t, totalTax/2, got.CGST, 1e-9)
	assert.InDelta(t, totalTax/2, got.SGST, 1e-9)
	assert.InDelta(t, 1.67, got.CGST, 0.01)
}

func TestComputeSubtotalIsGrossNotTaxable(t *testing.T) {
	got := Compute([]Line{{UnitPrice: 105, Quantity: 1}})
	// Inclusive display convention: subtotal shows the gross, not 100.
	assert.InDelta(t, 105.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 2.5, got.CGST, 1e-9)
	assert.InDelta(t, 2.5, got.SGST, 1e-9)
}

func TestComputeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := rng.Intn(12)
		lines := make([]Line, n)
		var gross float64
		for j := range lines {
			lines[j] = Line{
				UnitPrice: math.Round(rng.Float64()*50000) / 100,
				Quantity:  1 + rng.Intn(9),
			}
			gross += lines[j].UnitPrice * float64(lines[j].Quantity)
		}

		got := Compute(lines)

		assert.InDelta(t, gross, got.Subtotal, 1e-6)
		assert.InDelta(t, gross, got.GrandTotal, 1e-6)
		assert.InDelta(t, got.CGST, got.SGST, 1e-9, "tax halves must match")
		// Taxable value plus extracted tax reconstructs the gross.
		assert.InDelta(t, gross, gross/1.05+got.CGST+got.SGST, 1e-6)
	}
}

func TestComputeDeterministic(t *testing.T) {
	lines := []Line{{UnitPrice: 33.33, Quantity: 3}, {UnitPrice: 9.99, Quantity: 7}}
	first := Compute(lines)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(lines))
	}
}
