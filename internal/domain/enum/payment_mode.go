package enum

// PaymentMode represents how a bill was settled
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "Cash"
	PaymentModeUPI  PaymentMode = "UPI"
	PaymentModeCard PaymentMode = "Card"
)

// IsValid reports whether the mode is one of the supported values.
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard:
		return true
	}
	return false
}

// OrDefault returns the mode, falling back to cash when unset or unknown.
func (m PaymentMode) OrDefault() PaymentMode {
	if m.IsValid() {
		return m
	}
	return PaymentModeCash
}
