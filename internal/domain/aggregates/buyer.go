package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var BuyerAggregateContract = Contract{
	Name:             "Ordering.BuyerAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns buyer identity and the verify-or-add payment method dedup invariant.",
}

// BuyerAggregate owns buyer identity and stored payment method invariants.
type BuyerAggregate interface {
	Aggregate

	// VerifyOrAddPaymentMethod loads or creates the buyer for the identity
	// and verifies the payment data against the stored methods, adding a
	// masked method only when none matches.
	VerifyOrAddPaymentMethod(ctx context.Context, in VerifyPaymentMethodInput) (VerifyPaymentMethodResult, error)
}

type VerifyPaymentMethodInput struct {
	RequestID uuid.UUID

	BuyerIdentity string
	BuyerName     string

	CardTypeID         int
	Alias              string
	CardNumber         string
	CardSecurityNumber string
	CardHolderName     string
	CardExpiration     time.Time

	OrderID uuid.UUID
}

type VerifyPaymentMethodResult struct {
	BuyerID         uuid.UUID
	PaymentMethodID uuid.UUID
	Added           bool
}
