package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
)

// VerifyPaymentMethodCommand verifies card data for the authenticated buyer
// ahead of checkout, storing a masked method when none matches. The buyer
// fields come from the caller's identity, never the request body.
type VerifyPaymentMethodCommand struct {
	BuyerIdentity string `json:"-"`
	BuyerName     string `json:"-"`

	Alias              string    `json:"alias"`
	CardTypeID         int       `json:"card_type_id"`
	CardNumber         string    `json:"card_number"`
	CardSecurityNumber string    `json:"card_security_number"`
	CardHolderName     string    `json:"card_holder_name"`
	CardExpiration     time.Time `json:"card_expiration"`
}

func (VerifyPaymentMethodCommand) CommandName() string { return "VerifyPaymentMethodCommand" }

// VerifyPaymentMethodHandler delegates card verification to the buyer aggregate.
type VerifyPaymentMethodHandler struct {
	Buyers domainagg.BuyerAggregate
}

func (h VerifyPaymentMethodHandler) Handle(ctx context.Context, cmd VerifyPaymentMethodCommand, requestID uuid.UUID) (domainagg.VerifyPaymentMethodResult, error) {
	return h.Buyers.VerifyOrAddPaymentMethod(ctx, domainagg.VerifyPaymentMethodInput{
		RequestID:          requestID,
		BuyerIdentity:      cmd.BuyerIdentity,
		BuyerName:          cmd.BuyerName,
		CardTypeID:         cmd.CardTypeID,
		Alias:              cmd.Alias,
		CardNumber:         cmd.CardNumber,
		CardSecurityNumber: cmd.CardSecurityNumber,
		CardHolderName:     cmd.CardHolderName,
		CardExpiration:     cmd.CardExpiration,
	})
}
