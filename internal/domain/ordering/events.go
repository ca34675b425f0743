package ordering

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent records something that happened inside an aggregate during a
// unit of work. Events stay queued on the aggregate until the owning
// transaction commits; only then are they translated into integration
// events for other bounded contexts.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
}

// EventRecorder is the append-only domain event ledger embedded in
// aggregate roots. It is never persisted.
type EventRecorder struct {
	events []DomainEvent
}

// AddDomainEvent appends an event to the ledger.
func (r *EventRecorder) AddDomainEvent(e DomainEvent) {
	if e == nil {
		return
	}
	r.events = append(r.events, e)
}

// RemoveDomainEvent drops a previously queued event (matched by identity).
func (r *EventRecorder) RemoveDomainEvent(e DomainEvent) {
	for i, queued := range r.events {
		if queued == e {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return
		}
	}
}

// DomainEvents returns the events queued so far, in append order.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	return r.events
}

// ClearDomainEvents empties the ledger after the unit of work committed.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}

type baseEvent struct {
	occurredOn time.Time
}

func (e baseEvent) OccurredOn() time.Time { return e.occurredOn }

// OrderStartedEvent captures the buyer and payment context a new order was
// created with. It is consumed in-process by the buyer verification flow;
// the raw card fields never leave the transaction and are excluded from
// integration translation.
type OrderStartedEvent struct {
	baseEvent
	OrderID            uuid.UUID
	BuyerIdentity      string
	BuyerName          string
	CardTypeID         int
	CardNumber         string
	CardSecurityNumber string
	CardHolderName     string
	CardExpiration     time.Time
}

func (OrderStartedEvent) EventName() string { return "order.started" }

// BuyerPaymentMethodVerifiedEvent is raised when a buyer gains a new
// verified payment method while placing an order.
type BuyerPaymentMethodVerifiedEvent struct {
	baseEvent
	BuyerID         uuid.UUID
	PaymentMethodID uuid.UUID
	OrderID         uuid.UUID
}

func (BuyerPaymentMethodVerifiedEvent) EventName() string { return "buyer.payment_method_verified" }

// OrderStatusChangedEvent is raised on every order status transition.
type OrderStatusChangedEvent struct {
	baseEvent
	OrderID   uuid.UUID
	OldStatus OrderStatus
	NewStatus OrderStatus
	BuyerID   uuid.UUID
}

func (OrderStatusChangedEvent) EventName() string { return "order.status_changed" }

// OrderStockRejectedEvent carries the product ids reported out of stock
// when an order fails availability validation.
type OrderStockRejectedEvent struct {
	baseEvent
	OrderID            uuid.UUID
	RejectedProductIDs []int64
}

func (OrderStockRejectedEvent) EventName() string { return "order.stock_rejected" }

// OrderShippedEvent is raised when a paid order ships.
type OrderShippedEvent struct {
	baseEvent
	OrderID uuid.UUID
}

func (OrderShippedEvent) EventName() string { return "order.shipped" }

// OrderCancelledEvent is raised when an order is cancelled.
type OrderCancelledEvent struct {
	baseEvent
	OrderID uuid.UUID
}

func (OrderCancelledEvent) EventName() string { return "order.cancelled" }
