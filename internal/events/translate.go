package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/ordering-backend/internal/domain"
	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"github.com/yungbote/ordering-backend/internal/domain/outbox"
)

const (
	AggregateOrder = "order"
	AggregateBuyer = "buyer"
)

// Integration payloads are the wire shape of domain events. The order
// started payload deliberately drops the card number and security number
// carried by the in-process event; raw card data never reaches the outbox.

type OrderStartedPayload struct {
	OrderID       uuid.UUID `json:"order_id"`
	BuyerIdentity string    `json:"buyer_identity"`
	BuyerName     string    `json:"buyer_name,omitempty"`
	OccurredOn    time.Time `json:"occurred_on"`
}

type OrderStatusChangedPayload struct {
	OrderID    uuid.UUID            `json:"order_id"`
	OldStatus  ordering.OrderStatus `json:"old_status"`
	NewStatus  ordering.OrderStatus `json:"new_status"`
	BuyerID    uuid.UUID            `json:"buyer_id,omitempty"`
	OccurredOn time.Time            `json:"occurred_on"`
}

type OrderStockRejectedPayload struct {
	OrderID            uuid.UUID `json:"order_id"`
	RejectedProductIDs []int64   `json:"rejected_product_ids"`
	OccurredOn         time.Time `json:"occurred_on"`
}

type OrderShippedPayload struct {
	OrderID    uuid.UUID `json:"order_id"`
	OccurredOn time.Time `json:"occurred_on"`
}

type OrderCancelledPayload struct {
	OrderID    uuid.UUID `json:"order_id"`
	OccurredOn time.Time `json:"occurred_on"`
}

type BuyerPaymentMethodVerifiedPayload struct {
	BuyerID         uuid.UUID `json:"buyer_id"`
	PaymentMethodID uuid.UUID `json:"payment_method_id"`
	OrderID         uuid.UUID `json:"order_id"`
	OccurredOn      time.Time `json:"occurred_on"`
}

// FromDomainEvents translates queued domain events into pending outbox rows
// for the given aggregate. Rows carry no ID; the repo assigns one on insert.
func FromDomainEvents(aggregateType string, aggregateID uuid.UUID, evts []ordering.DomainEvent) ([]*types.IntegrationEventLog, error) {
	if len(evts) == 0 {
		return nil, nil
	}
	rows := make([]*types.IntegrationEventLog, 0, len(evts))
	for _, evt := range evts {
		payload, err := payloadFor(evt)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", evt.EventName(), err)
		}
		rows = append(rows, &types.IntegrationEventLog{
			EventType:     evt.EventName(),
			AggregateType: aggregateType,
			AggregateID:   aggregateID,
			Payload:       datatypes.JSON(raw),
			Status:        outbox.StatusPending,
		})
	}
	return rows, nil
}

func payloadFor(evt ordering.DomainEvent) (any, error) {
	switch e := evt.(type) {
	case *ordering.OrderStartedEvent:
		return OrderStartedPayload{
			OrderID:       e.OrderID,
			BuyerIdentity: e.BuyerIdentity,
			BuyerName:     e.BuyerName,
			OccurredOn:    e.OccurredOn(),
		}, nil
	case *ordering.OrderStatusChangedEvent:
		return OrderStatusChangedPayload{
			OrderID:    e.OrderID,
			OldStatus:  e.OldStatus,
			NewStatus:  e.NewStatus,
			BuyerID:    e.BuyerID,
			OccurredOn: e.OccurredOn(),
		}, nil
	case *ordering.OrderStockRejectedEvent:
		return OrderStockRejectedPayload{
			OrderID:            e.OrderID,
			RejectedProductIDs: e.RejectedProductIDs,
			OccurredOn:         e.OccurredOn(),
		}, nil
	case *ordering.OrderShippedEvent:
		return OrderShippedPayload{OrderID: e.OrderID, OccurredOn: e.OccurredOn()}, nil
	case *ordering.OrderCancelledEvent:
		return OrderCancelledPayload{OrderID: e.OrderID, OccurredOn: e.OccurredOn()}, nil
	case *ordering.BuyerPaymentMethodVerifiedEvent:
		return BuyerPaymentMethodVerifiedPayload{
			BuyerID:         e.BuyerID,
			PaymentMethodID: e.PaymentMethodID,
			OrderID:         e.OrderID,
			OccurredOn:      e.OccurredOn(),
		}, nil
	default:
		return nil, fmt.Errorf("no integration payload for domain event %q", evt.EventName())
	}
}
