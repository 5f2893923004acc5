package service

import (
	"sync"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/pkg/apperror"
	"github.com/kallospos/billing-api/pkg/pricing"
	"github.com/rs/zerolog"
)

// session is the in-memory order-in-progress for one table slot. It is
// never persisted; the process owns it for its whole lifetime.
type session struct {
	mu           sync.Mutex
	items        []entity.ReceiptLine
	locked       bool
	customerID   *uint
	customerName string
	draftBillNo  string
}

// SessionRegistry owns the fixed set of table sessions. It is created once
// at startup and passed into the services that need it; there is no
// package-level registry.
type SessionRegistry struct {
	slots []*session
}

// NewSessionRegistry creates a registry with sessions for tables 1..count.
func NewSessionRegistry(count int) *SessionRegistry {
	if count < 1 {
		count = 1
	}
	slots := make([]*session, count)
	for i := range slots {
		slots[i] = &session{}
	}
	return &SessionRegistry{slots: slots}
}

// TableCount returns the number of table slots.
func (r *SessionRegistry) TableCount() int {
	return len(r.slots)
}

func (r *SessionRegistry) get(tableNo int) (*session, error) {
	if tableNo < 1 || tableNo > len(r.slots) {
		return nil, apperror.NewNotFoundError("Table")
	}
	return r.slots[tableNo-1], nil
}

// SessionSnapshot is a point-in-time copy of one table's state with live
// totals derived from the pricing engine.
type SessionSnapshot struct {
	TableNo      int                  `json:"table_no"`
	Items        []entity.ReceiptLine `json:"items"`
	Locked       bool                 `json:"locked"`
	CustomerID   *uint                `json:"customer_id,omitempty"`
	CustomerName string               `json:"customer_name,omitempty"`
	DraftBillNo  string               `json:"draft_bill_no,omitempty"`
	Totals       pricing.Totals       `json:"totals"`
}

// TableOverview is the per-slot summary shown on the table selector strip.
type TableOverview struct {
	TableNo      int     `json:"table_no"`
	ItemCount    int     `json:"item_count"`
	RunningTotal float64 `json:"running_total"`
	Locked       bool    `json:"locked"`
}

// SessionService manages the per-table order sessions.
type SessionService struct {
	registry *SessionRegistry
	logger   zerolog.Logger
}

// NewSessionService creates a new session service over the given registry.
func NewSessionService(registry *SessionRegistry, logger zerolog.Logger) *SessionService {
	return &SessionService{
		registry: registry,
		logger:   logger.With().Str("component", "session").Logger(),
	}
}

// AddLine puts one unit of an article on the table's cart. Adding an
// article that is already on the cart with the same quantity variant
// increments its quantity instead of appending a second line. Locked
// sessions ignore the call.
func (s *SessionService) AddLine(tableNo int, name string, price float64, qtyType, emoji string) error {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return err
	}
	if name == "" {
		return apperror.NewBadRequestError("Article name is required")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.locked {
		return nil
	}

	for i := range sess.items {
		if sess.items[i].Name == name && sess.items[i].QtyType == qtyType {
			sess.items[i].Qty++
			return nil
		}
	}
	sess.items = append(sess.items, entity.ReceiptLine{
		Name:    name,
		Qty:     1,
		Price:   price,
		QtyType: qtyType,
		Emoji:   emoji,
	})
	return nil
}

// UpdateQuantity adjusts a line's quantity by delta, never below 1.
// Removing a line through decrement is not possible; use RemoveLine.
// Locked sessions ignore the call.
func (s *SessionService) UpdateQuantity(tableNo, index, delta int) error {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.locked {
		return nil
	}
	if index < 0 || index >= len(sess.items) {
		return apperror.NewBadRequestError("Line item index out of range")
	}

	qty := sess.items[index].Qty + delta
	if qty < 1 {
		qty = 1
	}
	sess.items[index].Qty = qty
	return nil
}

// RemoveLine deletes a line from the cart. Locked sessions ignore the call.
func (s *SessionService) RemoveLine(tableNo, index int) error {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.locked {
		return nil
	}
	if index < 0 || index >= len(sess.items) {
		return apperror.NewBadRequestError("Line item index out of range")
	}

	sess.items = append(sess.items[:index], sess.items[index+1:]...)
	return nil
}

// Lock seals the table after checkout; all mutations become no-ops until
// the operator clears it.
func (s *SessionService) Lock(tableNo int) error {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.locked = true
	return nil
}

// Reset clears the table back to an empty, unlocked session with no linked
// customer and no draft bill number.
func (s *SessionService) Reset(tableNo int) error {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.items = nil
	sess.locked = false
	sess.customerID = nil
	sess.customerName = ""
	sess.draftBillNo = ""
	s.logger.Debug().Int("table", tableNo).Msg("table cleared")
	return nil
}

// LinkCustomer attaches a non-owning customer reference to the table.
// Allowed regardless of lock state.
func (s *SessionService) LinkCustomer(tableNo int, customerID uint, name string) error {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.customerID = &customerID
	sess.customerName = name
	return nil
}

// UnlinkCustomer detaches the customer reference. Allowed regardless of
// lock state.
func (s *SessionService) UnlinkCustomer(tableNo int) error {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.customerID = nil
	sess.customerName = ""
	return nil
}

// SetDraftBillNo records the previewed bill number on the session so a
// retried checkout reuses it instead of previewing again.
func (s *SessionService) SetDraftBillNo(tableNo int, billNo string) error {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.draftBillNo = billNo
	return nil
}

// Snapshot returns a copy of the table's state with live totals.
func (s *SessionService) Snapshot(tableNo int) (*SessionSnapshot, error) {
	sess, err := s.registry.get(tableNo)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	items := make([]entity.ReceiptLine, len(sess.items))
	copy(items, sess.items)

	lines := make([]pricing.Line, len(items))
	for i, it := range items {
		lines[i] = pricing.Line{UnitPrice: it.Price, Quantity: it.Qty}
	}

	return &SessionSnapshot{
		TableNo:      tableNo,
		Items:        items,
		Locked:       sess.locked,
		CustomerID:   sess.customerID,
		CustomerName: sess.customerName,
		DraftBillNo:  sess.draftBillNo,
		Totals:       pricing.Compute(lines),
	}, nil
}

// Overview returns the per-table summaries for the table selector.
func (s *SessionService) Overview() []TableOverview {
	overviews := make([]TableOverview, len(s.registry.slots))
	for i, sess := range s.registry.slots {
		sess.mu.Lock()
		var total float64
		var count int
		for _, it := range sess.items {
			total += it.Price * float64(it.Qty)
			count += it.Qty
		}
		overviews[i] = TableOverview{
			TableNo:      i + 1,
			ItemCount:    count,
			RunningTotal: total,
			Locked:       sess.locked,
		}
		sess.mu.Unlock()
	}
	return overviews
}
