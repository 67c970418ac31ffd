package enum

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentGPay PaymentMethod = "GPay"
	PaymentCard PaymentMethod = "Card"
)

// IsValid reports whether the value is one of the accepted payment methods
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentGPay, PaymentCard:
		return true
	}
	return false
}

func (p PaymentMethod) String() string {
	return string(p)
}
