package ordering

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order is the aggregate root driving the order status state machine.
// Orders are never physically deleted; cancellation and rejection are
// represented in Status. The stored payment description never includes the
// full PAN or the security number.
type Order struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID   *uuid.UUID `gorm:"type:uuid;index" json:"buyer_id,omitempty"`
	OrderDate time.Time  `gorm:"column:order_date;not null" json:"order_date"`

	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	Status      OrderStatus  `gorm:"column:status;not null;index" json:"status"`
	Description string       `gorm:"column:description" json:"description"`
	Items       []*OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	PaymentCardTypeID       int        `gorm:"column:payment_card_type_id" json:"payment_card_type_id"`
	PaymentMaskedCardNumber string     `gorm:"column:payment_masked_card_number" json:"payment_masked_card_number"`
	PaymentCardHolderName   string     `gorm:"column:payment_card_holder_name" json:"payment_card_holder_name"`
	PaymentExpiration       *time.Time `gorm:"column:payment_expiration" json:"payment_expiration,omitempty"`

	Version   int       `gorm:"column:version;not null;default:0" json:"version"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	EventRecorder `gorm:"-" json:"-"`

	// buyer context captured at creation, consumed by the verification
	// flow inside the same unit of work; not persisted on the order row.
	buyerIdentity string
	buyerName     string
}

func (Order) TableName() string { return "orders" }

// NewOrder creates a submitted order and queues the order-started event
// carrying the buyer and payment context needed for buyer verification.
func NewOrder(buyerIdentity, buyerName string, address Address, cardTypeID int, cardNumber, cardSecurityNumber, cardHolderName string, cardExpiration, now time.Time) (*Order, error) {
	buyerIdentity = strings.TrimSpace(buyerIdentity)
	if buyerIdentity == "" {
		return nil, ValidationError("buyer identity is required")
	}
	o := &Order{
		ID:            uuid.New(),
		OrderDate:     now.UTC(),
		Address:       address,
		Status:        StatusSubmitted,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
		buyerIdentity: buyerIdentity,
		buyerName:     strings.TrimSpace(buyerName),
	}
	o.AddDomainEvent(&OrderStartedEvent{
		baseEvent:          baseEvent{occurredOn: now.UTC()},
		OrderID:            o.ID,
		BuyerIdentity:      o.buyerIdentity,
		BuyerName:          o.buyerName,
		CardTypeID:         cardTypeID,
		CardNumber:         cardNumber,
		CardSecurityNumber: cardSecurityNumber,
		CardHolderName:     cardHolderName,
		CardExpiration:     cardExpiration,
	})
	return o, nil
}

// BuyerIdentity returns the authenticated identity the order was created
// with, available until the buyer is attached.
func (o *Order) BuyerIdentity() string { return o.buyerIdentity }

// BuyerName returns the display name captured at creation.
func (o *Order) BuyerName() string { return o.buyerName }

// AddItem appends a new order line. Adding the same product twice yields
// two coexisting lines whose totals sum; lines are never merged.
func (o *Order) AddItem(productID int64, productName string, unitPrice, discount float64, pictureURL string, units int) error {
	if o.Status != StatusSubmitted {
		return ValidationErrorf("cannot add items to an order in status %q", o.Status)
	}
	item, err := NewOrderItem(productID, productName, unitPrice, discount, pictureURL, units)
	if err != nil {
		return err
	}
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
	return nil
}

// Total sums the line totals across all items.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	return total
}

// AttachBuyerAndPayment stamps the verified buyer and payment description
// onto the order and moves it from Submitted to AwaitingValidation.
func (o *Order) AttachBuyerAndPayment(buyerID uuid.UUID, method *PaymentMethod, now time.Time) error {
	if buyerID == uuid.Nil {
		return ValidationError("buyer id is required")
	}
	if method == nil {
		return ValidationError("payment method is required")
	}
	if err := o.transition(StatusAwaitingValidation, now); err != nil {
		return err
	}
	id := buyerID
	exp := method.Expiration
	o.BuyerID = &id
	o.PaymentCardTypeID = method.CardTypeID
	o.PaymentMaskedCardNumber = method.MaskedCardNumber
	o.PaymentCardHolderName = method.CardHolderName
	o.PaymentExpiration = &exp
	return nil
}

// SetStockConfirmed records that every line was confirmed available.
func (o *Order) SetStockConfirmed(now time.Time) error {
	if err := o.transition(StatusStockConfirmed, now); err != nil {
		return err
	}
	o.Description = "All the items were confirmed with available stock."
	return nil
}

// SetStockRejected records the out-of-stock lines and parks the order.
func (o *Order) SetStockRejected(rejectedProductIDs []int64, now time.Time) error {
	if len(rejectedProductIDs) == 0 {
		return ValidationError("at least one rejected product id is required")
	}
	if err := o.transition(StatusStockRejected, now); err != nil {
		return err
	}
	names := make([]string, 0, len(rejectedProductIDs))
	seen := make(map[int64]bool, len(rejectedProductIDs))
	for _, item := range o.Items {
		if seen[item.ProductID] {
			continue
		}
		for _, rejected := range rejectedProductIDs {
			if item.ProductID == rejected {
				names = append(names, item.ProductName)
				seen[item.ProductID] = true
				break
			}
		}
	}
	o.Description = fmt.Sprintf("The product items don't have stock: (%s).", strings.Join(names, ", "))
	o.AddDomainEvent(&OrderStockRejectedEvent{
		baseEvent:          baseEvent{occurredOn: now.UTC()},
		OrderID:            o.ID,
		RejectedProductIDs: rejectedProductIDs,
	})
	return nil
}

// SetPaid records the payment-success signal.
func (o *Order) SetPaid(now time.Time) error {
	if err := o.transition(StatusPaid, now); err != nil {
		return err
	}
	o.Description = "The payment was performed at a simulated \"American Bank checking bank account ending on XX35071\""
	return nil
}

// SetShipped marks a paid order as shipped. Terminal.
func (o *Order) SetShipped(now time.Time) error {
	if err := o.transition(StatusShipped, now); err != nil {
		return err
	}
	o.Description = "The order was shipped."
	o.AddDomainEvent(&OrderShippedEvent{
		baseEvent: baseEvent{occurredOn: now.UTC()},
		OrderID:   o.ID,
	})
	return nil
}

// SetCancelled cancels the order from any non-terminal state.
func (o *Order) SetCancelled(now time.Time) error {
	if err := o.transition(StatusCancelled, now); err != nil {
		return err
	}
	o.Description = "The order was cancelled."
	o.AddDomainEvent(&OrderCancelledEvent{
		baseEvent: baseEvent{occurredOn: now.UTC()},
		OrderID:   o.ID,
	})
	return nil
}

// transition validates the edge, applies it, and queues the status-changed
// event. Illegal edges fail naming both states and leave the order intact.
func (o *Order) transition(to OrderStatus, now time.Time) error {
	if !allowedTransition(o.Status, to) {
		return ValidationErrorf("cannot change order status from %q to %q", o.Status, to)
	}
	from := o.Status
	o.Status = to
	o.UpdatedAt = now.UTC()
	event := &OrderStatusChangedEvent{
		baseEvent: baseEvent{occurredOn: now.UTC()},
		OrderID:   o.ID,
		OldStatus: from,
		NewStatus: to,
	}
	if o.BuyerID != nil {
		event.BuyerID = *o.BuyerID
	}
	o.AddDomainEvent(event)
	return nil
}
