package enums

import "fmt"

// OrderStatus tracks where an order sits in the payment lifecycle.
type OrderStatus string

const (
	// OrderStatusPending is the initial state of every placed order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusPaymentReceived is terminal and only set by the payment webhook.
	OrderStatusPaymentReceived OrderStatus = "payment_received"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaymentReceived,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
