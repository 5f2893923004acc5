package request

// CheckoutRequest settles a table's session into a bill.
type CheckoutRequest struct {
	PaymentMode string `json:"payment_mode" binding:"omitempty,oneof=Cash UPI Card"`
}
