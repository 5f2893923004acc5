package entity

import (
	"time"

	"github.com/kallospos/billing-api/internal/domain/enum"
)

// Bill is the persisted fiscal record of a completed sale. It is written
// exactly once per checkout and never updated afterwards.
//
// BillNo is the human-facing display number; it restarts when the operator
// resets the sequence, so it is deliberately not unique. ID is the
// authoritative store identity.
type Bill struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	BillNo      string           `gorm:"size:20;not null" json:"bill_no"`
	CustomerID  *uint            `gorm:"index" json:"customer_id,omitempty"`
	Subtotal    float64          `gorm:"not null" json:"subtotal"`
	CGST        float64          `gorm:"not null" json:"cgst"`
	SGST        float64          `gorm:"not null" json:"sgst"`
	Total       float64          `gorm:"not null" json:"total"`
	PaymentMode enum.PaymentMode `gorm:"size:20;default:'Cash'" json:"payment_mode"`
	ImagePath   string           `gorm:"size:512" json:"image_path"`
	CreatedAt   time.Time        `json:"created_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem is a line captured at checkout time. It denormalizes the menu
// item's name and price so historical bills survive menu edits.
type BillItem struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	BillID  uint    `gorm:"not null;index" json:"bill_id"`
	Name    string  `gorm:"size:255;not null" json:"name"`
	Qty     int     `gorm:"not null;check:qty > 0" json:"qty"`
	Price   float64 `gorm:"not null" json:"price"`
	QtyType string  `gorm:"size:50" json:"qty_type"`

	// Relationships
	Bill Bill `gorm:"foreignKey:BillID" json:"-"`
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
