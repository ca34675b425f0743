package ordering

// OrderStatus is the order state machine state. Transitions are monotonic
// and only move through the edges in allowedTransitions; terminal states
// accept no further transitions.
type OrderStatus string

const (
	StatusSubmitted          OrderStatus = "submitted"
	StatusAwaitingValidation OrderStatus = "awaiting_validation"
	StatusStockConfirmed     OrderStatus = "stock_confirmed"
	StatusStockRejected      OrderStatus = "stock_rejected"
	StatusPaid               OrderStatus = "paid"
	StatusShipped            OrderStatus = "shipped"
	StatusCancelled          OrderStatus = "cancelled"
)

// IsKnown reports whether s is one of the defined statuses.
func (s OrderStatus) IsKnown() bool {
	switch s {
	case StatusSubmitted, StatusAwaitingValidation, StatusStockConfirmed,
		StatusStockRejected, StatusPaid, StatusShipped, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed from s.
// StockRejected conceptually maps to Cancelled but still accepts an
// explicit cancellation, so it is not terminal here.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

func allowedTransition(from, to OrderStatus) bool {
	if to == StatusCancelled {
		return !from.IsTerminal()
	}
	switch from {
	case StatusSubmitted:
		return to == StatusAwaitingValidation
	case StatusAwaitingValidation:
		return to == StatusStockConfirmed || to == StatusStockRejected
	case StatusStockConfirmed:
		return to == StatusPaid
	case StatusPaid:
		return to == StatusShipped
	default:
		return false
	}
}
