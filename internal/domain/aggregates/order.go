package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ordering-backend/internal/domain/ordering"
)

var OrderAggregateContract = Contract{
	Name:             "Ordering.OrderAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns order creation and the order status state machine; dedup record, outbox rows and aggregate rows commit in one transaction.",
}

// OrderAggregate owns order lifecycle invariants.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeUnauthorized, CodeNotFound, CodeConflict,
// CodeInvariantViolation, CodeRetryable, CodeInternal.
type OrderAggregate interface {
	Aggregate

	// CreateOrder atomically creates the order, verifies (or creates) the
	// buyer with the supplied payment data, and moves the order to
	// AwaitingValidation.
	CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error)

	// CancelOrder cancels a non-terminal order.
	CancelOrder(ctx context.Context, in OrderTransitionInput) (OrderStatusResult, error)

	// ShipOrder marks a paid order as shipped.
	ShipOrder(ctx context.Context, in OrderTransitionInput) (OrderStatusResult, error)

	// ConfirmStock applies the external all-items-available signal.
	ConfirmStock(ctx context.Context, in OrderTransitionInput) (OrderStatusResult, error)

	// RejectStock records the out-of-stock product ids.
	RejectStock(ctx context.Context, in RejectStockInput) (OrderStatusResult, error)

	// ConfirmPayment applies the payment-success signal.
	ConfirmPayment(ctx context.Context, in OrderTransitionInput) (OrderStatusResult, error)
}

type OrderItemInput struct {
	ProductID   int64
	ProductName string
	UnitPrice   float64
	Discount    float64
	PictureURL  string
	Units       int
}

type CreateOrderInput struct {
	RequestID uuid.UUID

	BuyerIdentity string
	BuyerName     string

	Street  string
	City    string
	State   string
	Country string
	ZipCode string

	CardTypeID         int
	CardNumber         string
	CardSecurityNumber string
	CardHolderName     string
	CardExpiration     time.Time

	Items []OrderItemInput
}

type CreateOrderResult struct {
	OrderID uuid.UUID
	BuyerID uuid.UUID
	Status  ordering.OrderStatus
	Total   float64
}

type OrderTransitionInput struct {
	RequestID uuid.UUID
	OrderID   uuid.UUID
}

type RejectStockInput struct {
	RequestID          uuid.UUID
	OrderID            uuid.UUID
	RejectedProductIDs []int64
}

type OrderStatusResult struct {
	OrderID uuid.UUID
	Status  ordering.OrderStatus
}
