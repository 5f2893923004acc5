package repository

import (
	"context"

	"github.com/kallospos/billing-api/internal/domain/entity"
)

// BillSummary is a bill row joined with the linked customer's name for the
// history listing.
type BillSummary struct {
	entity.Bill
	CustomerName string `json:"customer_name,omitempty"`
}

// BillRepository defines the interface for fiscal bill data operations
type BillRepository interface {
	// CreateWithItems inserts the bill and all its line items as a single
	// all-or-nothing transaction and returns the store-assigned id.
	CreateWithItems(ctx context.Context, bill *entity.Bill, items []entity.BillItem) (uint, error)
	GetByID(ctx context.Context, id uint) (*entity.Bill, error)
	// List returns bills most-recent-first joined with customer names.
	List(ctx context.Context, limit, offset int) ([]BillSummary, int64, error)
	GetItems(ctx context.Context, billID uint) ([]entity.BillItem, error)
	// CountAfter counts bills whose store id is greater than the given
	// baseline; the sequencer derives display numbers from it.
	CountAfter(ctx context.Context, id int64) (int64, error)
	// MaxID returns the largest bill id, 0 when no bills exist.
	MaxID(ctx context.Context) (int64, error)
}
