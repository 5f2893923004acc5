package pricing

// CombinedTaxRate is the combined GST rate applied to all menu prices.
// Prices are tax-inclusive: the tax is extracted from the gross amount,
// never added on top.
const CombinedTaxRate = 0.05

// Line is the minimal view of a bill line the pricing engine needs.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Totals holds the computed amounts for a set of lines.
//
// Subtotal intentionally equals GrandTotal: in inclusive mode the receipt
// shows the gross amount on both rows and the tax lines are informational.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	GrandTotal float64 `json:"total"`
}

// Compute derives inclusive-tax totals from the given lines.
// It is pure: same input, same output, no side effects.
func Compute(lines []Line) Totals {
	var gross float64
	for _, l := range lines {
		gross += l.UnitPrice * float64(l.Quantity)
	}
	if gross == 0 {
		return Totals{}
	}

	taxable := gross / (1 + CombinedTaxRate)
	totalTax := gross - taxable

	return Totals{
		Subtotal:   gross,
		CGST:       totalTax / 2,
		SGST:       totalTax / 2,
		GrandTotal: gross,
	}
}
