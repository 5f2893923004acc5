package entity

import "time"

// Customer represents a guest in the customer directory. Customers are
// created independently of billing and only ever linked to bills by
// reference.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Mobile    string    `gorm:"size:20;uniqueIndex;not null" json:"mobile"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
