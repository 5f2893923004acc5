package entity

import (
	"fmt"
	"time"

	"github.com/kallospos/billing-api/internal/domain/enum"
)

// ReceiptLine is a single line item on a printed document.
type ReceiptLine struct {
	Name    string  `json:"name"`
	Qty     int     `json:"qty"`
	Price   float64 `json:"price"`
	QtyType string  `json:"qtyType"`
	Emoji   string  `json:"emoji,omitempty"`
}

// ReceiptPayload is the contract crossing the rendering-surface boundary
// for a final bill. It is not a database entity; it is composed from the
// order session at checkout time and serialized into the receipt template.
type ReceiptPayload struct {
	Items        []ReceiptLine    `json:"items"`
	Subtotal     float64          `json:"subtotal"`
	CGST         float64          `json:"cgst"`
	SGST         float64          `json:"sgst"`
	Total        float64          `json:"total"`
	BillNo       string           `json:"billNo"`
	CustomerID   *uint            `json:"customerId,omitempty"`
	CustomerName string           `json:"customerName,omitempty"`
	PaymentMode  enum.PaymentMode `json:"paymentMode"`
	// Timestamp is the logical bill time; the archived artifact's mtime is
	// set to it so receipts sort by business time, not capture time.
	Timestamp time.Time `json:"timestamp"`
	// Reprint re-issues the artifact and print without creating a new
	// fiscal record.
	Reprint bool `json:"reprint,omitempty"`
}

// Validate rejects payloads that cannot produce a coherent fiscal document.
func (p *ReceiptPayload) Validate() error {
	if len(p.Items) == 0 {
		return fmt.Errorf("receipt payload: no line items")
	}
	if p.BillNo == "" {
		return fmt.Errorf("receipt payload: missing bill number")
	}
	if p.Timestamp.IsZero() {
		return fmt.Errorf("receipt payload: missing timestamp")
	}
	for i, item := range p.Items {
		if item.Name == "" {
			return fmt.Errorf("receipt payload: item %d has no name", i)
		}
		if item.Qty < 1 {
			return fmt.Errorf("receipt payload: item %q has quantity %d", item.Name, item.Qty)
		}
	}
	return nil
}

// KOTPayload is the contract for a kitchen order ticket. KOTs never touch
// the fiscal store; they only produce an audit artifact and a print.
type KOTPayload struct {
	Items     []ReceiptLine `json:"items"`
	TableNo   int           `json:"tableNo"`
	Timestamp time.Time     `json:"timestamp"`
}

// Validate rejects tickets that would render empty.
func (p *KOTPayload) Validate() error {
	if len(p.Items) == 0 {
		return fmt.Errorf("kot payload: no line items")
	}
	if p.TableNo < 1 {
		return fmt.Errorf("kot payload: invalid table %d", p.TableNo)
	}
	if p.Timestamp.IsZero() {
		return fmt.Errorf("kot payload: missing timestamp")
	}
	return nil
}
